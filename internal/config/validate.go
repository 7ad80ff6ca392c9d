package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < 4 || c.Auth.PasswordHashCost > 31 {
		return fmt.Errorf("auth.password_hash_cost must be between 4 and 31 (got %d)", c.Auth.PasswordHashCost)
	}

	if err := c.Care.validate(); err != nil {
		return fmt.Errorf("care: %w", err)
	}

	return nil
}

func (c *CareConfig) validate() error {
	for name, days := range map[string]int{
		"watering_default_days":    c.WateringDefaultDays,
		"fertilizing_default_days": c.FertilizingDefaultDays,
		"repotting_default_days":   c.RepottingDefaultDays,
		"vitamins_default_days":    c.VitaminsDefaultDays,
		"insecticide_default_days": c.InsecticideDefaultDays,
	} {
		if days < 0 {
			return fmt.Errorf("%s must be >= 0 (got %d)", name, days)
		}
	}
	return nil
}
