package domain

// ProjectSearcher is the port interface the monitor consumes.
// The domain does not know about Freelancer.com or any specific marketplace.
type ProjectSearcher interface {
	SearchActiveProjects(query string, filter Filter) ([]Project, error)
}
