package models

// Grade is a read-only record of a grade a student received for a course.
type Grade struct {
	ID           int64  `json:"id" db:"id"`
	StudentID    int64  `json:"studentId" db:"student_id"`
	CourseID     int64  `json:"courseId" db:"course_id"`
	Grade        string `json:"grade" db:"grade"`
	Semester     string `json:"semester" db:"semester"`
	AcademicYear string `json:"academicYear" db:"academic_year"`
}

// GradeReport is a grade joined with its course for rendering.
type GradeReport struct {
	CourseCode   string `json:"courseCode" db:"course_code"`
	CourseName   string `json:"courseName" db:"course_name"`
	Credits      int    `json:"credits" db:"credits"`
	Grade        string `json:"grade" db:"grade"`
	Semester     string `json:"semester" db:"semester"`
	AcademicYear string `json:"academicYear" db:"academic_year"`
}
