package taxonomy

// DefaultChart returns the default household category chart written by
// `finlens init`. Users edit taxonomy.yaml afterwards to fit their data.
func DefaultChart() []Parent {
	return []Parent{
		{Name: "Food", Children: []string{"Lunch", "Dinner", "Coffee", "Groceries", "Snacks"}},
		{Name: "Transport", Children: []string{"Taxi", "Fuel", "Parking", "Bus"}},
		{Name: "Housing", Children: []string{"Rent", "Electricity", "Water", "Internet"}},
		{Name: "Shopping", Children: []string{"Clothes", "Electronics", "Household"}},
		{Name: "Health", Children: []string{"Medicine", "Doctor", "Gym"}},
		{Name: "Entertainment", Children: []string{"Movies", "Games", "Travel"}},
		{Name: "Family", Children: []string{"Gifts", "Kids", "Pets"}},
		{Name: "Income", Children: []string{"Salary", "Bonus", "Interest", "Freelance"}},
	}
}
