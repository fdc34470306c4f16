package validator

import (
	"log"

	"destined_affinity/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила на основе statuses.go
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-member-role", enumRule(func(s string) bool { return models.MemberRole(s).Valid() }))
	mustRegister("is-premium-status", enumRule(func(s string) bool { return models.PremiumStatus(s).Valid() }))
	mustRegister("is-access-status", enumRule(func(s string) bool { return models.AccessStatus(s).Valid() }))
	mustRegister("is-sex", enumRule(func(s string) bool { return models.Sex(s).Valid() }))
	mustRegister("is-division", enumRule(func(s string) bool { return models.Division(s).Valid() }))
	mustRegister("is-payment-purpose", enumRule(func(s string) bool { return models.PaymentPurpose(s).Valid() }))
}

// enumRule пропускает пустые значения: для них есть 'required'.
// Работает и для указателей (PATCH-поля).
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}
