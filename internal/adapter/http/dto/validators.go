package dto

import (
	"ecommerce-transactions/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rpt_id", validateRptID)
		_ = v.RegisterValidation("client_id", validateClientID)
	}
}

// validateRptID accepts a 29 character notice identifier.
func validateRptID(fl validator.FieldLevel) bool {
	_, err := domain.NewRptID(fl.Field().String())
	return err == nil
}

// validateClientID accepts the known front-end channels.
func validateClientID(fl validator.FieldLevel) bool {
	_, err := domain.ParseClientID(fl.Field().String())
	return err == nil
}
