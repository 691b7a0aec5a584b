package services

// Services defined in this package:
// - AuthService: registration, login and admin account creation
// - UserService: account updates, guarded deletion and listing
// - ProfessorService: professor profiles and their course rosters
// - StudentService: student profiles, keyed by enrollment number
// - CourseService: courses, rosters and the summary report
// - RosterService: keeps both denormalized relationship sides consistent
