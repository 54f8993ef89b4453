// Package cleanup collects shutdown jobs registered by long-lived
// resources such as the database pool.
package cleanup

import (
	"errors"
	"log"
	"sync"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	defer mu.Unlock()
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs in reverse order of registration and
// forgets them. Failed jobs are logged and joined into the result.
func CleanUp() error {
	mu.Lock()
	pending := jobs
	jobs = nil
	mu.Unlock()

	var errs []error
	for i := len(pending) - 1; i >= 0; i-- {
		j := pending[i]
		log.Printf("Cleanup job %s started...", j.Name)
		if err := j.F(); err != nil {
			log.Printf("Job finished with error: %v", err)
			errs = append(errs, errors.New(j.Name+": "+err.Error()))
			continue
		}
		log.Println("Cleaned")
	}
	return errors.Join(errs...)
}
