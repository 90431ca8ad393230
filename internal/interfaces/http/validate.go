package http

import "github.com/go-playground/validator/v10"

// validate aplica las reglas declaradas en los tags `validate` de los DTO.
var validate = validator.New()
