package domain

type Warehouse struct {
	ID       int
	Name     string
	BranchID *int
	Street   string
	City     string
	Zip      string
	Lat      *float64
	Lng      *float64
}

// Company is a selling company or pickup branch in the back office.
type Company struct {
	ID       int
	Name     string
	Street   string
	City     string
	Zip      string
	IsBranch bool
}
