package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Company *CompanyRepository
	Job     *JobRepository
	User    *UserRepository
}

// NewRepositories builds every repository over db, normally the server's
// database/sql handle.
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Company: NewCompanyRepository(db),
		Job:     NewJobRepository(db),
		User:    NewUserRepository(db),
	}
}
