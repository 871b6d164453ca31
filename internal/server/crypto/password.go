// Хэширование паролей
package crypto

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptParams — параметры хэширования bcrypt.
type BcryptParams struct {
	Cost int
}

// HashPassword возвращает bcrypt-хэш пароля (соль входит в хэш).
func HashPassword(password string, p BcryptParams) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("empty password")
	}

	cost := p.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword сверяет пароль с хэшем.
//
// Возвращает (false, nil) при несовпадении пароля и ошибку только
// при повреждённом хэше.
func VerifyPassword(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
