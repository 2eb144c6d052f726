package visitor

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Wire field names. The backend silently drops registrations whose keys
// deviate from these.
const (
	FieldFirstName  = "first_name"
	FieldLastName   = "last_name"
	FieldEmail      = "email"
	FieldMajor      = "major"
	FieldDegreeType = "degree_type"
	FieldPassword   = "password"
)

const (
	maxNameLen     = 64
	maxMajorLen    = 128
	maxEmailLen    = 254
	maxPasswordLen = 256
)

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s.]+(\.[^@\s.]+)+$`)

// DegreeType is the degree a visitor is pursuing.
type DegreeType string

const (
	DegreeBachelors DegreeType = "Bachelors"
	DegreeMasters   DegreeType = "Masters"
	DegreePhd       DegreeType = "Phd"
	DegreeOther     DegreeType = "Other"
)

// DegreeTypes lists the recognized values in display order.
var DegreeTypes = []DegreeType{DegreeBachelors, DegreeMasters, DegreePhd, DegreeOther}

// ParseDegreeType matches s case-sensitively against DegreeTypes.
func ParseDegreeType(s string) (DegreeType, error) {
	for _, d := range DegreeTypes {
		if string(d) == s {
			return d, nil
		}
	}
	return "", invalid(FieldDegreeType, "must be one of Bachelors, Masters, Phd, Other")
}

// Record is a validated visitor profile. The zero value is not valid; use
// NewRecord.
type Record struct {
	firstName  string
	lastName   string
	email      string
	major      string
	degreeType DegreeType
	password   string
}

// NewRecord validates its arguments and returns an immutable Record.
// Names, email and major are trimmed; email is lowercased. Fields are checked
// in wire order and the first failure is returned.
func NewRecord(firstName, lastName, email, major, degreeType, password string) (Record, error) {
	var r Record
	var err error

	if r.firstName, err = requireText(FieldFirstName, firstName, maxNameLen); err != nil {
		return Record{}, err
	}
	if r.lastName, err = requireText(FieldLastName, lastName, maxNameLen); err != nil {
		return Record{}, err
	}
	if r.email, err = normalizeEmail(email); err != nil {
		return Record{}, err
	}
	if r.major, err = requireText(FieldMajor, major, maxMajorLen); err != nil {
		return Record{}, err
	}
	if r.degreeType, err = ParseDegreeType(degreeType); err != nil {
		return Record{}, err
	}
	if err = checkPassword(password); err != nil {
		return Record{}, err
	}
	r.password = password

	return r, nil
}

func requireText(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", invalid(field, "must not be empty")
	}
	if utf8.RuneCountInString(v) > max {
		return "", invalid(field, fmt.Sprintf("must be at most %d characters", max))
	}
	return v, nil
}

func normalizeEmail(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "":
		return "", invalid(FieldEmail, "must not be empty")
	case strings.Count(v, "@") != 1:
		return "", invalid(FieldEmail, "must contain exactly one @")
	case len(v) > maxEmailLen:
		return "", invalid(FieldEmail, fmt.Sprintf("must be at most %d characters", maxEmailLen))
	case !emailShape.MatchString(v):
		return "", invalid(FieldEmail, "must look like local@domain.tld")
	}
	return v, nil
}

func checkPassword(value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(FieldPassword, "must not be empty")
	}
	if utf8.RuneCountInString(value) > maxPasswordLen {
		return invalid(FieldPassword, fmt.Sprintf("must be at most %d characters", maxPasswordLen))
	}
	return nil
}

func (r Record) FirstName() string      { return r.firstName }
func (r Record) LastName() string       { return r.lastName }
func (r Record) Email() string          { return r.email }
func (r Record) Major() string          { return r.major }
func (r Record) DegreeType() DegreeType { return r.degreeType }

// Password returns the secret. Callers must not log it.
func (r Record) Password() string { return r.password }

// IsZero reports whether r was not produced by NewRecord.
func (r Record) IsZero() bool {
	return r == Record{}
}

// ToWire returns the request shape expected by the backend: exactly the six
// wire keys.
func (r Record) ToWire() map[string]string {
	return map[string]string{
		FieldFirstName:  r.firstName,
		FieldLastName:   r.lastName,
		FieldEmail:      r.email,
		FieldMajor:      r.major,
		FieldDegreeType: string(r.degreeType),
		FieldPassword:   r.password,
	}
}

func (r Record) String() string {
	return fmt.Sprintf("Record{first_name:%q last_name:%q email:%q major:%q degree_type:%q}",
		r.firstName, r.lastName, r.email, r.major, r.degreeType)
}

func (r Record) GoString() string {
	return "visitor." + r.String()
}

// Format routes every verb through String so that no fmt verb can reach the
// password field.
func (r Record) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		_, _ = io.WriteString(f, r.GoString())
		return
	}
	_, _ = io.WriteString(f, r.String())
}

func (r Record) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String(FieldFirstName, r.firstName),
		slog.String(FieldLastName, r.lastName),
		slog.String(FieldEmail, r.email),
		slog.String(FieldMajor, r.major),
		slog.String(FieldDegreeType, string(r.degreeType)),
	)
}

// MarshalJSON renders the public profile only. Use ToWire for requests.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		FieldFirstName:  r.firstName,
		FieldLastName:   r.lastName,
		FieldEmail:      r.email,
		FieldMajor:      r.major,
		FieldDegreeType: string(r.degreeType),
	})
}
