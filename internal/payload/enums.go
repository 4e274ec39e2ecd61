package payload

// Category is a plan category. The predefined values map to fixed display
// strings; CustomCategory passes its label through after validation.
type Category struct {
	label  string
	custom bool
}

var (
	Cardio           = Category{label: "Cardio"}
	WeightManagement = Category{label: "Weight Management"}
	Strength         = Category{label: "Strength"}
	Rehabilitation   = Category{label: "Rehabilitation"}
)

// Categories lists the predefined categories.
var Categories = []Category{Cardio, WeightManagement, Strength, Rehabilitation}

// CustomCategory builds a category with a caller-defined label.
func CustomCategory(label string) Category {
	return Category{label: label, custom: true}
}

func (c Category) String() string { return c.label }

// IsCustom reports whether the label came from the caller.
func (c Category) IsCustom() bool { return c.custom }

// Lifestyle describes a user's activity level.
type Lifestyle int

const (
	Sedentary Lifestyle = iota
	SlightlyActive
	Active
	VeryActive
)

func (l Lifestyle) String() string {
	switch l {
	case Sedentary:
		return "Sedentary"
	case SlightlyActive:
		return "Slightly Active"
	case Active:
		return "Active"
	case VeryActive:
		return "Very Active"
	default:
		return "Active"
	}
}

// Gender as understood by the embedded content.
type Gender int

const (
	GenderUnknown Gender = iota
	Male
	Female
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	default:
		return "Unknown"
	}
}

// UserProfile contributes body metrics to the payload. Height is in
// centimetres and weight in kilograms.
type UserProfile struct {
	Age       int
	Height    int
	Weight    int
	Gender    Gender
	Lifestyle Lifestyle
}
