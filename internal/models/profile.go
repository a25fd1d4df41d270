package models

// StudentProfile holds the student detail record, one-to-one with an account
// whose role is STUDENT.
type StudentProfile struct {
	AccountID string `db:"account_id" json:"account_id"`
	Name      string `db:"name" json:"name"`
	Surname   string `db:"surname" json:"surname"`
	Username  string `db:"username" json:"username"`
	GradYear  int    `db:"grad_year" json:"grad_year"`
	Major     string `db:"major" json:"major"`
	Email     string `db:"email" json:"email"`
}

// InstructorProfile holds the instructor detail record. Email is unique within
// the table and is accepted as a lookup key when assigning courses.
type InstructorProfile struct {
	AccountID  string `db:"account_id" json:"account_id"`
	Name       string `db:"name" json:"name"`
	Surname    string `db:"surname" json:"surname"`
	Title      string `db:"title" json:"title"`
	HireYear   int    `db:"hire_year" json:"hire_year"`
	Department string `db:"department" json:"department"`
	Email      string `db:"email" json:"email"`
}

// AdminProfile holds the administrator detail record.
type AdminProfile struct {
	AccountID string `db:"account_id" json:"account_id"`
	Name      string `db:"name" json:"name"`
	Surname   string `db:"surname" json:"surname"`
	Title     string `db:"title" json:"title"`
	Office    string `db:"office" json:"office"`
	Email     string `db:"email" json:"email"`
}

// AccountDetail bundles an account with whichever profile matches its role.
type AccountDetail struct {
	Account
	Student    *StudentProfile    `json:"student,omitempty"`
	Instructor *InstructorProfile `json:"instructor,omitempty"`
	Admin      *AdminProfile      `json:"admin,omitempty"`
}
