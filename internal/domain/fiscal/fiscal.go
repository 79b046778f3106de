// Package fiscal implements the invoice numbering scheme and the 44-digit
// fiscal access key with its mod-11 check digit. Everything here is pure:
// sequence allocation and persistence live in the repository layer.
package fiscal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidIssuer        = errors.New("invalid fiscal issuer configuration")
	ErrInvalidInvoiceNumber = errors.New("invalid invoice number")
	ErrSequenceExhausted    = errors.New("invoice sequence exhausted")
	ErrInvalidAccessKey     = errors.New("invalid access key")
)

const (
	numberSeqDigits = 9
	maxSequence     = 999999999

	// accessKeyBaseLen is the length of the weighted base; the full key adds
	// one check digit.
	accessKeyBaseLen = 43
	accessKeyLen     = 44

	fillerDigits = 3
)

// Issuer holds the fixed positional fields of the access key. All values are
// numeric strings of the exact width noted.
type Issuer struct {
	TaxID         string // 13 digits
	Environment   string // 1 digit (1 = test, 2 = production)
	Establishment string // 3 digits
	EmissionPoint string // 3 digits
	DocumentType  string // 2 digits
	EmissionType  string // 1 digit
}

func (i Issuer) Validate() error {
	checks := []struct {
		name  string
		value string
		width int
	}{
		{"tax id", i.TaxID, 13},
		{"environment", i.Environment, 1},
		{"establishment", i.Establishment, 3},
		{"emission point", i.EmissionPoint, 3},
		{"document type", i.DocumentType, 2},
		{"emission type", i.EmissionType, 1},
	}
	for _, c := range checks {
		if len(c.value) != c.width || !isDigits(c.value) {
			return fmt.Errorf("%w: %s must be %d digits, got %q", ErrInvalidIssuer, c.name, c.width, c.value)
		}
	}
	return nil
}

// FormatNumber assembles the EEE-PPP-SSSSSSSSS invoice number.
func FormatNumber(establishment, emissionPoint string, seq int64) (string, error) {
	if len(establishment) != 3 || !isDigits(establishment) || len(emissionPoint) != 3 || !isDigits(emissionPoint) {
		return "", fmt.Errorf("%w: establishment %q emission point %q", ErrInvalidInvoiceNumber, establishment, emissionPoint)
	}
	if seq < 1 || seq > maxSequence {
		return "", fmt.Errorf("%w: sequence %d out of range", ErrSequenceExhausted, seq)
	}
	return fmt.Sprintf("%s-%s-%09d", establishment, emissionPoint, seq), nil
}

// ParseNumber splits an invoice number into its components.
func ParseNumber(number string) (establishment, emissionPoint string, seq int64, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || len(parts[0]) != 3 || len(parts[1]) != 3 || len(parts[2]) != numberSeqDigits {
		return "", "", 0, fmt.Errorf("%w: %q", ErrInvalidInvoiceNumber, number)
	}
	for _, p := range parts {
		if !isDigits(p) {
			return "", "", 0, fmt.Errorf("%w: %q", ErrInvalidInvoiceNumber, number)
		}
	}
	seq, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: %q", ErrInvalidInvoiceNumber, number)
	}
	return parts[0], parts[1], seq, nil
}

// NextNumber increments the sequence component of the last issued number.
// The first invoice of a fresh system is 001-001-000000001.
func NextNumber(last string) (string, error) {
	if last == "" {
		return FormatNumber("001", "001", 1)
	}
	establishment, emissionPoint, seq, err := ParseNumber(last)
	if err != nil {
		return "", err
	}
	return FormatNumber(establishment, emissionPoint, seq+1)
}

// BuildAccessKey concatenates the 43-digit base in fixed order and appends
// the mod-11 check digit. The filler must be exactly 3 digits; identical
// inputs always produce the identical key, which is what lets downstream
// verifiers re-validate the key offline.
func BuildAccessKey(issuer Issuer, issueDate time.Time, seq int64, filler string) (string, error) {
	if err := issuer.Validate(); err != nil {
		return "", err
	}
	if seq < 1 || seq > maxSequence {
		return "", fmt.Errorf("%w: sequence %d out of range", ErrSequenceExhausted, seq)
	}
	if len(filler) != fillerDigits || !isDigits(filler) {
		return "", fmt.Errorf("%w: filler must be %d digits, got %q", ErrInvalidAccessKey, fillerDigits, filler)
	}

	var b strings.Builder
	b.WriteString(issueDate.Format("20060102"))
	b.WriteString(issuer.DocumentType)
	b.WriteString(issuer.TaxID)
	b.WriteString(issuer.Environment)
	b.WriteString(issuer.Establishment)
	b.WriteString(issuer.EmissionPoint)
	fmt.Fprintf(&b, "%09d", seq)
	b.WriteString(filler)
	b.WriteString(issuer.EmissionType)

	base := b.String()
	if len(base) != accessKeyBaseLen {
		return "", fmt.Errorf("%w: base is %d digits, want %d", ErrInvalidAccessKey, len(base), accessKeyBaseLen)
	}

	check, err := CheckDigit(base)
	if err != nil {
		return "", err
	}
	return base + strconv.Itoa(check), nil
}

// NewAccessKey builds an access key with a random filler.
func NewAccessKey(issuer Issuer, issueDate time.Time, seq int64) (string, error) {
	filler, err := randomFiller()
	if err != nil {
		return "", err
	}
	return BuildAccessKey(issuer, issueDate, seq, filler)
}

// CheckDigit computes the mod-11 check digit over a digit string. Cyclic
// weights 2,3,4,5,6,7 are assigned from the least significant digit to the
// most significant one; remainder 0 maps to 0, remainder 1 maps to 1, and
// anything else maps to 11-remainder.
func CheckDigit(digits string) (int, error) {
	if digits == "" || !isDigits(digits) {
		return 0, fmt.Errorf("%w: check digit input must be numeric", ErrInvalidAccessKey)
	}
	weight := 2
	sum := 0
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}
	switch rem := sum % 11; rem {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	default:
		return 11 - rem, nil
	}
}

// ValidateAccessKey re-validates a full 44-digit key against its own check
// digit, the way an external verifier would.
func ValidateAccessKey(key string) error {
	if len(key) != accessKeyLen || !isDigits(key) {
		return fmt.Errorf("%w: want %d digits", ErrInvalidAccessKey, accessKeyLen)
	}
	check, err := CheckDigit(key[:accessKeyBaseLen])
	if err != nil {
		return err
	}
	if int(key[accessKeyBaseLen]-'0') != check {
		return fmt.Errorf("%w: check digit mismatch", ErrInvalidAccessKey)
	}
	return nil
}

func randomFiller() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%03d", n.Int64()), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
