package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword produces the bcrypt digest stored in usuarios.password.
// Cost comes from config so tests can run with the bcrypt minimum.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks a login or reset attempt against the stored digest
// in constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
