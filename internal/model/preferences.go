package model

import "time"

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

type Notifications struct {
	Email         bool `json:"email"`
	Push          bool `json:"push"`
	TaskReminders bool `json:"taskReminders"`
	DailySummary  bool `json:"dailySummary"`
}

type UserPreferences struct {
	UserID        string        `json:"userId"`
	Theme         Theme         `json:"theme"`
	Notifications Notifications `json:"notifications"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// DefaultPreferences returns the preferences a user starts with.
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID: userID,
		Theme:  ThemeLight,
		Notifications: Notifications{
			TaskReminders: true,
		},
	}
}

type PreferencesPatch struct {
	Theme         *Theme
	Email         *bool
	Push          *bool
	TaskReminders *bool
	DailySummary  *bool
}

func (p PreferencesPatch) Apply(prefs UserPreferences) UserPreferences {
	if p.Theme != nil {
		prefs.Theme = *p.Theme
	}
	if p.Email != nil {
		prefs.Notifications.Email = *p.Email
	}
	if p.Push != nil {
		prefs.Notifications.Push = *p.Push
	}
	if p.TaskReminders != nil {
		prefs.Notifications.TaskReminders = *p.TaskReminders
	}
	if p.DailySummary != nil {
		prefs.Notifications.DailySummary = *p.DailySummary
	}
	return prefs
}
