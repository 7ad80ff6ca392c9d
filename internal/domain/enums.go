package domain

// TaskType represents one of the fixed care actions a plant can receive.
type TaskType string

const (
	TaskWatering    TaskType = "WATERING"
	TaskFertilizing TaskType = "FERTILIZING"
	TaskRepotting   TaskType = "REPOTTING"
	TaskVitamins    TaskType = "VITAMINS"
	TaskInsecticide TaskType = "INSECTICIDE"
)

// AllTaskTypes lists every known task type in display order.
// The overdue engine evaluates exactly this set; anything else is ignored.
var AllTaskTypes = []TaskType{
	TaskWatering,
	TaskFertilizing,
	TaskRepotting,
	TaskVitamins,
	TaskInsecticide,
}

func (t TaskType) String() string { return string(t) }

func (t TaskType) IsValid() bool {
	switch t {
	case TaskWatering, TaskFertilizing, TaskRepotting, TaskVitamins, TaskInsecticide:
		return true
	}
	return false
}

// Label returns the past-tense display label for care history rows.
func (t TaskType) Label() string {
	switch t {
	case TaskWatering:
		return "Watered"
	case TaskFertilizing:
		return "Fertilized"
	case TaskRepotting:
		return "Repotted"
	case TaskVitamins:
		return "Given vitamins"
	case TaskInsecticide:
		return "Treated with insecticide"
	}
	return string(t)
}

// CauseOfDeath is the fixed set of reasons a plant can be moved to the graveyard.
type CauseOfDeath string

const (
	CauseOverwatering       CauseOfDeath = "overwatering"
	CauseUnderwatering      CauseOfDeath = "underwatering"
	CausePestInfestation    CauseOfDeath = "pest_infestation"
	CauseLackOfLight        CauseOfDeath = "lack_of_light"
	CauseTooMuchLight       CauseOfDeath = "too_much_light"
	CauseNutrientDeficiency CauseOfDeath = "nutrient_deficiency"
	CauseUnknown            CauseOfDeath = "unknown"
)

func (c CauseOfDeath) String() string { return string(c) }

func (c CauseOfDeath) IsValid() bool {
	switch c {
	case CauseOverwatering, CauseUnderwatering, CausePestInfestation,
		CauseLackOfLight, CauseTooMuchLight, CauseNutrientDeficiency, CauseUnknown:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
