package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

// RegisterValidators installs the custom binding validators. Call once at
// startup before the router handles traffic.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("providertype", validProviderType); err != nil {
		return err
	}
	return v.RegisterValidation("nodetypes", validNodeTypes)
}

func validProviderType(fl validator.FieldLevel) bool {
	return domain.ValidProviderType(fl.Field().String())
}

func validNodeTypes(fl validator.FieldLevel) bool {
	return domain.ValidNodeType(fl.Field().String())
}
