// Command datacheck validates a document file before it is shipped as seed
// data: referential integrity between registrations and courses, schedule
// strings the conflict checker can parse, and capacity counters that match
// the registration buckets.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/noah-isme/course-registration-api/internal/models"
	"github.com/noah-isme/course-registration-api/internal/schedule"
)

func main() {
	path := flag.String("file", "data/seed.json", "document file to validate")
	strict := flag.Bool("strict", false, "treat warnings as failures")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *path, err)
		os.Exit(1)
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", *path, err)
		os.Exit(1)
	}

	problems := checkDocument(&doc)
	for _, p := range problems {
		fmt.Println(p)
	}
	fmt.Printf("%s: %d student(s), %d course(s), %d issue(s)\n",
		*path, len(doc.Students), len(doc.Courses), len(problems))

	if len(problems) > 0 && *strict {
		os.Exit(1)
	}
}

func checkDocument(doc *models.Document) []string {
	var problems []string

	courseIDs := make(map[string]bool, len(doc.Courses))
	for _, c := range doc.Courses {
		if courseIDs[c.CourseID] {
			problems = append(problems, fmt.Sprintf("duplicate course id %q", c.CourseID))
		}
		courseIDs[c.CourseID] = true

		if _, malformed := schedule.ConflictsChecked(c.Schedule, c.Schedule); len(malformed) > 0 {
			problems = append(problems, fmt.Sprintf("course %s: unparsable schedule entries %v", c.CourseID, malformed))
		}
		if c.MaxStudents > 0 && c.CurrentStudents > c.MaxStudents {
			problems = append(problems, fmt.Sprintf("course %s: enrolled %d exceeds capacity %d", c.CourseID, c.CurrentStudents, c.MaxStudents))
		}
	}

	studentIDs := make(map[string]bool, len(doc.Students))
	for _, s := range doc.Students {
		if studentIDs[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate student id %q", s.ID))
		}
		studentIDs[s.ID] = true
	}

	activeCounts := make(map[string]int)
	for studentID, bucket := range doc.Registrations {
		if !studentIDs[studentID] {
			problems = append(problems, fmt.Sprintf("registrations for unknown student %q", studentID))
		}
		for _, r := range append(append([]models.Registration{}, bucket.Current...), bucket.Previous...) {
			if !courseIDs[r.CourseID] {
				problems = append(problems, fmt.Sprintf("student %s: registration for unknown course %q", studentID, r.CourseID))
			}
			if r.Status == models.RegistrationStatusRegistered {
				activeCounts[r.CourseID]++
			}
		}
	}

	for _, c := range doc.Courses {
		if n := activeCounts[c.CourseID]; n > c.CurrentStudents {
			problems = append(problems, fmt.Sprintf("course %s: counter %d below %d active registration(s)", c.CourseID, c.CurrentStudents, n))
		}
	}

	return problems
}
