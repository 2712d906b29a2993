package models

// Suggested transaction categories. Category is free text; these are the
// values offered by clients and used for generated data.
const (
	CategoryGroceries      = "Groceries"
	CategoryUtilities      = "Utilities"
	CategoryEntertainment  = "Entertainment"
	CategoryTransportation = "Transportation"
	CategoryHealthcare     = "Healthcare"
	CategoryDining         = "Dining"
	CategoryShopping       = "Shopping"
	CategorySalary         = "Salary"
	CategoryOther          = "Other"
)

// ExpenseCategories returns the suggested expense categories
func ExpenseCategories() []string {
	return []string{
		CategoryGroceries,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryTransportation,
		CategoryHealthcare,
		CategoryDining,
		CategoryShopping,
		CategoryOther,
	}
}

// IncomeCategories returns the suggested income categories
func IncomeCategories() []string {
	return []string{CategorySalary, CategoryOther}
}
