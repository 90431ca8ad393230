package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/mdhome/bella-api/internal/domain"
)

// paramString devuelve un parámetro de ruta decodificado (los nombres de
// prenda llevan espacios y acentos).
func paramString(c *fiber.Ctx, key string) (string, error) {
	v, err := url.PathUnescape(c.Params(key))
	if err != nil || v == "" {
		return "", domain.ErrInvalidInput
	}
	return v, nil
}
