package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// SalvarFotoLocal grava o upload em uploads/ e retorna o caminho servível.
// É o fallback de desenvolvimento quando o R2 não está configurado.
func SalvarFotoLocal(fileHeader *multipart.FileHeader, key string) (string, error) {
	destino := filepath.Join("uploads", key)
	if err := os.MkdirAll(filepath.Dir(destino), os.ModePerm); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dst, err := os.Create(destino)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(destino), nil
}
