package models

// Document is the root aggregate persisted as a single JSON file. Every
// mutation rewrites the whole file; there are no partial writes.
type Document struct {
	Students      []Student                     `json:"Students"`
	Courses       []Course                      `json:"Courses"`
	Registrations map[string]RegistrationBucket `json:"Registrations"`
	Terms         []Term                        `json:"Terms,omitempty"`
}

// NewDocument returns an empty document with initialised collections.
func NewDocument() *Document {
	return &Document{
		Students:      []Student{},
		Courses:       []Course{},
		Registrations: map[string]RegistrationBucket{},
	}
}

// Clone deep-copies the document's collections so a mutation can proceed
// without touching the original. Per-entry pointer fields (withdraw date,
// grade) are shared; mutators replace them, never write through them.
func (d *Document) Clone() *Document {
	clone := &Document{
		Students:      append([]Student(nil), d.Students...),
		Courses:       append([]Course(nil), d.Courses...),
		Registrations: make(map[string]RegistrationBucket, len(d.Registrations)),
		Terms:         append([]Term(nil), d.Terms...),
	}
	for studentID, bucket := range d.Registrations {
		clone.Registrations[studentID] = RegistrationBucket{
			Current:  append([]Registration(nil), bucket.Current...),
			Previous: append([]Registration(nil), bucket.Previous...),
		}
	}
	return clone
}

// FindStudent returns the student with the given id, or nil.
func (d *Document) FindStudent(id string) *Student {
	for i := range d.Students {
		if d.Students[i].ID == id {
			return &d.Students[i]
		}
	}
	return nil
}

// FindStudentByEmail returns the student with the given email, or nil.
func (d *Document) FindStudentByEmail(email string) *Student {
	for i := range d.Students {
		if d.Students[i].Email == email {
			return &d.Students[i]
		}
	}
	return nil
}

// FindCourse returns the course with the given course id, or nil.
func (d *Document) FindCourse(courseID string) *Course {
	for i := range d.Courses {
		if d.Courses[i].CourseID == courseID {
			return &d.Courses[i]
		}
	}
	return nil
}

// Bucket returns the registration bucket for a student. The second return
// value reports whether the bucket exists.
func (d *Document) Bucket(studentID string) (RegistrationBucket, bool) {
	bucket, ok := d.Registrations[studentID]
	return bucket, ok
}

// EnsureBucket returns the bucket for a student, creating it when the student
// has no registrations yet.
func (d *Document) EnsureBucket(studentID string) RegistrationBucket {
	if d.Registrations == nil {
		d.Registrations = map[string]RegistrationBucket{}
	}
	bucket, ok := d.Registrations[studentID]
	if !ok {
		bucket = RegistrationBucket{Current: []Registration{}, Previous: []Registration{}}
		d.Registrations[studentID] = bucket
	}
	return bucket
}

// RegistrationBucket holds a student's registrations split into the active
// term (Current) and closed-out history (Previous). Entries move from Current
// to Previous only through an external archival process.
type RegistrationBucket struct {
	Current  []Registration `json:"Current"`
	Previous []Registration `json:"Previous"`
}
