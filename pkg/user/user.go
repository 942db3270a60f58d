package user

// User is an account holder with a personal calendar and job list.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

// Settings control which calendar is read and how wide the timesheet view is.
type Settings struct {
	Timezone        string
	CalendarId      string
	ViewPastWeeks   int
	ViewFutureWeeks int
}
