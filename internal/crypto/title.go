package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrAuthFailed тег не сошёлся: подмена данных или другой ключ
	ErrAuthFailed = errors.New("title authentication failed")
	// ErrCiphertextMalformed трёхчастное значение с битым hex
	ErrCiphertextMalformed = errors.New("title ciphertext malformed")
)

// TitleCodec шифрует заголовки задач AES-256-GCM перед записью в БД.
// Формат хранения: три hex-поля через двоеточие "nonce:tag:ciphertext".
// Ключ один на процесс, загружается при старте из конфигурации.
type TitleCodec struct {
	aead cipher.AEAD
}

// NewTitleCodec создаёт кодек из 32-байтового ключа.
// Валидация длины ключа происходит в config при старте, здесь только
// страховка от неправильной сборки.
func NewTitleCodec(key []byte) (*TitleCodec, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("title key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("gcm: %w", err)
	}
	return &TitleCodec{aead: aead}, nil
}

// Encrypt шифрует заголовок. Пустая строка проходит без изменений.
// Nonce свежий из crypto/rand на каждый вызов; повтор nonce под одним
// ключом недопустим.
func (c *TitleCodec) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	tagAt := len(sealed) - c.aead.Overhead()
	body, tag := sealed[:tagAt], sealed[tagAt:]

	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(body), nil
}

// Decrypt расшифровывает сохранённое значение.
//   - пустая строка и значения не из трёх частей проходят без изменений:
//     это legacy-строки, записанные до ввода шифрования;
//   - битый hex в трёхчастном значении -> ErrCiphertextMalformed;
//   - проваленная аутентификация -> исходная строка + ErrAuthFailed,
//     путь чтения никогда не падает из-за одного заголовка.
func (c *TitleCodec) Decrypt(stored string) (string, error) {
	if stored == "" {
		return "", nil
	}

	parts := strings.Split(stored, ":")
	if len(parts) != 3 {
		// Legacy plaintext
		return stored, nil
	}

	nonce, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", ErrCiphertextMalformed
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", ErrCiphertextMalformed
	}
	body, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", ErrCiphertextMalformed
	}
	if len(nonce) != c.aead.NonceSize() {
		return "", ErrCiphertextMalformed
	}

	plaintext, err := c.aead.Open(nil, nonce, append(body, tag...), nil)
	if err != nil {
		return stored, ErrAuthFailed
	}

	return string(plaintext), nil
}
