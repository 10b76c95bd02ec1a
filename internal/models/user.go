package models

// User is the signed-in resident held by the session store.
type User struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Location  string  `json:"location"`
	Verified  bool    `json:"verified"`
	Vouches   int     `json:"vouches"`
	CreatedAt int64   `json:"created_at"`
	Avatar    *string `json:"avatar,omitempty"`
}

// ThemeState is the UI colour scheme preference.
type ThemeState struct {
	IsDarkMode bool `json:"is_dark_mode"`
}
