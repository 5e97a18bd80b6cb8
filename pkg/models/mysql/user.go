package mysql

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/wheelsync/motorlot/pkg/models"
	"github.com/wheelsync/motorlot/pkg/sql/queries"
)

// UserModel struct holds database instance
type UserModel struct {
	DB *sql.DB
}

// Get validates credentials and returns the matching user
func (m *UserModel) Get(username, password string) (*models.JWTUser, error) {
	var u models.JWTUser
	err := m.DB.QueryRow(queries.USER_BY_USERNAME, username).Scan(&u.ID, &u.Username, &u.Password, &u.Name, &u.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNoRecord
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, err
	}

	return &u, nil
}
