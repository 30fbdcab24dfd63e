package content

// Catalog is the mock portal data shown on each page
type Catalog struct {
	Semester   string     `yaml:"semester"`
	Dashboard  Dashboard  `yaml:"dashboard"`
	Timetable  Timetable  `yaml:"timetable"`
	Attendance Attendance `yaml:"attendance"`
	Exams      Exams      `yaml:"exams"`
	Resources  Resources  `yaml:"resources"`
	Reminders  Reminders  `yaml:"reminders"`
}

type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

type Class struct {
	Subject string `yaml:"subject"`
	Time    string `yaml:"time"`
	Room    string `yaml:"room"`
}

type Dashboard struct {
	Stats   []Stat  `yaml:"stats"`
	Classes []Class `yaml:"classes"`
}

type TimetableDay struct {
	Day     string  `yaml:"day"`
	Classes []Class `yaml:"classes"`
}

type Timetable struct {
	Days []TimetableDay `yaml:"days"`
}

type SubjectAttendance struct {
	Subject  string `yaml:"subject"`
	Attended int    `yaml:"attended"`
	Total    int    `yaml:"total"`
}

// Percent returns attendance rounded to the nearest percent
func (s SubjectAttendance) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Attended*100 + s.Total/2) / s.Total
}

type MonthlyAttendance struct {
	Month   string `yaml:"month"`
	Percent int    `yaml:"percent"`
}

type Attendance struct {
	Overall  SubjectAttendance   `yaml:"overall"`
	Subjects []SubjectAttendance `yaml:"subjects"`
	Trend    []MonthlyAttendance `yaml:"trend"`
}

type Exam struct {
	Subject string `yaml:"subject"`
	Kind    string `yaml:"kind"`
	Date    string `yaml:"date"`
	Time    string `yaml:"time"`
	Venue   string `yaml:"venue"`
	Seat    string `yaml:"seat"`
	Score   string `yaml:"score"`
	Grade   string `yaml:"grade"`
}

type Exams struct {
	Current   []Exam `yaml:"current"`
	Upcoming  []Exam `yaml:"upcoming"`
	Completed []Exam `yaml:"completed"`
	Results   []Exam `yaml:"results"`
}

type Video struct {
	Title    string `yaml:"title"`
	Lecturer string `yaml:"lecturer"`
	Duration string `yaml:"duration"`
}

type Resources struct {
	Materials []string `yaml:"materials"`
	Documents []string `yaml:"documents"`
	Videos    []Video  `yaml:"videos"`
}

type Reminder struct {
	Title string `yaml:"title"`
	Due   string `yaml:"due"`
}

type Notification struct {
	Title  string `yaml:"title"`
	Date   string `yaml:"date"`
	Detail string `yaml:"detail"`
}

type Reminders struct {
	Active        []Reminder     `yaml:"active"`
	Notifications []Notification `yaml:"notifications"`
}
