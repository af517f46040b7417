package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobflow/internal/domain"
)

var postedAt = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleDigest(contact string) domain.Digest {
	return domain.Digest{
		Contact: contact,
		Subject: "New Go Developer jobs for you!",
		Jobs: []domain.JobView{
			{
				ID:       uuid.New(),
				Title:    "Go <Backend> Engineer",
				Company:  "Acme",
				Location: "Pune",
				Source:   "adzuna",
				ApplyURL: "https://example.com/jobs/1",
				PostedAt: &postedAt,
			},
			{
				ID:       uuid.New(),
				Title:    "Platform Engineer",
				Source:   "naukri",
				ApplyURL: "https://example.com/jobs/2",
			},
		},
	}
}
