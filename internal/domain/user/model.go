package user

import "sticky/internal/model"

// User - учетная запись пользователя в том виде, в каком её хранит бэкенд.
// Пароль хранится и сравнивается в открытом виде.
type User struct {
	ID        model.ID `json:"id,omitempty"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
}

// UpdateRequest - частичное обновление пользователя, отправляются только заданные поля
type UpdateRequest struct {
	ID        model.ID `json:"-"`
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Email     *string  `json:"email,omitempty"`
	Password  *string  `json:"password,omitempty"`
}

// IsEmpty сообщает, что в запросе нет ни одного поля для обновления
func (r UpdateRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil && r.Password == nil
}

// FindByEmail линейно ищет пользователя с точным совпадением email
func FindByEmail(users []User, email string) (User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}
