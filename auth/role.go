package auth

type (
	Role string
)

const (
	Student  = Role("student")
	Lecturer = Role("lecturer")
	PRL      = Role("prl")
	PL       = Role("pl")
)

var (
	allRoles = []Role{Student, Lecturer, PRL, PL}
)

// ParseRole accepts only the exact lower case role names.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", InvalidRole{Value: s}
	}
	return r, nil
}

func (r Role) Valid() bool {
	for _, v := range allRoles {
		if r == v {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func Roles() []Role {
	return append([]Role(nil), allRoles...)
}
