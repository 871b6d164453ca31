package tests

import (
	"testing"

	crypt "github.com/movievault/movievault/internal/server/crypto"
)

// минимальный cost, чтобы тесты не тормозили
func defaultParams() crypt.BcryptParams {
	return crypt.BcryptParams{Cost: 4}
}

// Хэширование и успешная проверка
func TestHashAndVerifyPassword_OK(t *testing.T) {
	params := defaultParams()
	password := "super-secret-password"

	hash, err := crypt.HashPassword(password, params)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := crypt.VerifyPassword(password, hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}

	if !ok {
		t.Fatal("expected password to be valid")
	}
}

// Неверный пароль
func TestVerifyPassword_InvalidPassword(t *testing.T) {
	params := defaultParams()

	hash, err := crypt.HashPassword("correct-password", params)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := crypt.VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}

	if ok {
		t.Fatal("expected password to be invalid")
	}
}

// Пустой пароль
func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := crypt.HashPassword("", defaultParams())
	if err == nil {
		t.Fatal("expected error for empty password")
	}
}

// Нулевой cost заменяется дефолтным
func TestHashPassword_ZeroCostUsesDefault(t *testing.T) {
	hash, err := crypt.HashPassword("password123", crypt.BcryptParams{})
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	ok, err := crypt.VerifyPassword("password123", hash)
	if err != nil || !ok {
		t.Fatalf("expected valid password, ok=%v err=%v", ok, err)
	}
}

// Битый формат хэша
func TestVerifyPassword_InvalidFormat(t *testing.T) {
	_, err := crypt.VerifyPassword("password", "not-a-valid-hash")
	if err == nil {
		t.Fatal("expected error for invalid hash format")
	}
}

// Соль разная — хэши разные
func TestHashPassword_DifferentSalt(t *testing.T) {
	params := defaultParams()
	password := "same-password"

	h1, _ := crypt.HashPassword(password, params)
	h2, _ := crypt.HashPassword(password, params)

	if h1 == h2 {
		t.Fatal("expected different hashes for same password")
	}
}
