package applicants

// Header is the literal first row of the store file.
var Header = []string{"name", "email", "phone", "position", "resumepath"}

// Applicant is one row of the store. Email is the lookup key but is not
// required to be unique.
type Applicant struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Position   string `json:"position"`
	ResumePath string `json:"resumepath"`
}

func (a Applicant) record() []string {
	return []string{a.Name, a.Email, a.Phone, a.Position, a.ResumePath}
}

func fromRecord(rec []string) Applicant {
	return Applicant{
		Name:       rec[0],
		Email:      rec[1],
		Phone:      rec[2],
		Position:   rec[3],
		ResumePath: rec[4],
	}
}
