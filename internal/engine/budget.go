package engine

// DefaultMemoryBudget is the web runtime's default heap size (16 MiB).
const DefaultMemoryBudget uint64 = 16 * 1024 * 1024

// CheckBudget fails when the assets would not fit in budget bytes.
// A budget equal to totalSize is sufficient.
func CheckBudget(budget, totalSize uint64) error {
	if budget < totalSize {
		return &BudgetExceededError{Budget: budget, TotalSize: totalSize}
	}
	return nil
}
