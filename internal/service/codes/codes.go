package codes

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Prefix фиксированный префикс всех инвайт-кодов.
	Prefix = "ETF-V-"

	randomPartLength = 6
	alphabet         = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// InviteCode генерирует инвайт-коды вида ETF-V-XXXXXX, где XXXXXX - 6 случайных символов
// [A-Z0-9]. Случайная часть короткая, уникальность обеспечивает уникальный индекс в базе.
type InviteCode string

func (InviteCode) Generate() (string, error) {
	random := make([]byte, randomPartLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range random {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating invite code: %s", err.Error())
		}
		random[i] = alphabet[n.Int64()]
	}
	return Prefix + string(random), nil
}
