package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/granaapp/grana_backend/internal/utils"
)

// registerCustomValidators adds the "money" binding rule: a positive
// decimal string, accepting a comma decimal separator.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseAmount(fl.Field().String())
		return err == nil
	})
}
