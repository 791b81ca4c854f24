package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string

	err := scanner.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.MobileNo,
		&user.Gender,
		&user.PasswordHash,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return user, nil
}

// ScanCompanyProfile scans a single company profile from a database row
func ScanCompanyProfile(scanner Scanner) (*CompanyProfile, error) {
	profile := &CompanyProfile{}
	var foundedDate sql.NullString
	var updatedAt string

	err := scanner.Scan(
		&profile.OwnerID,
		&profile.CompanyName,
		&profile.Address,
		&profile.City,
		&profile.State,
		&profile.Country,
		&profile.PostalCode,
		&profile.Website,
		&profile.Industry,
		&foundedDate,
		&profile.Description,
		&profile.LogoURL,
		&profile.BannerURL,
		&profile.SocialLinks,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if profile.FoundedDate, err = ParseNullDate(foundedDate); err != nil {
		return nil, err
	}
	if profile.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}
	return profile, nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var dueDate sql.NullString

	err := scanner.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&dueDate,
		&task.Completed,
		&task.Priority,
		&task.Category,
		&task.Position,
	)
	if err != nil {
		return nil, err
	}

	if task.DueDate, err = ParseNullDate(dueDate); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	var tasks []*Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
