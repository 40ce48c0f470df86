package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	ProvinceID   string
	MarketID     string
	AvatarURL    string
	IsActive     string
	CreatedAt    string
	UpdatedAt    string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	FullName:     "fullname",
	PasswordHash: "passwordhash",
	Role:         "role",
	ProvinceID:   "provinceid",
	MarketID:     "marketid",
	AvatarURL:    "avatarurl",
	IsActive:     "isactive",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.FullName, t.PasswordHash, t.Role, t.ProvinceID, t.MarketID, t.AvatarURL, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
