package store

import (
	"context"

	"winemap/internal/enrich"
	"winemap/internal/imageenc"
	"winemap/internal/models"
)

// addJob carries a draft through the preparation pipeline. Steps of the
// same stage write disjoint fields.
type addJob struct {
	draft    models.Draft
	location models.Location
	image    string
}

// newAddPipeline validates first, then resolves the location and encodes
// the image in parallel.
func newAddPipeline(res Resolver) *enrich.Pipeline[addJob] {
	validate := func(_ context.Context, j *addJob) error {
		return validateDraft(j.draft)
	}
	resolve := func(ctx context.Context, j *addJob) error {
		loc, err := res.Resolve(ctx, j.draft.Location)
		if err != nil {
			return err
		}
		j.location = loc
		return nil
	}
	encode := func(_ context.Context, j *addJob) error {
		if len(j.draft.Image) == 0 {
			j.image = j.draft.ImageURL
			return nil
		}
		uri, err := imageenc.Encode(j.draft.Image)
		if err != nil {
			return err
		}
		j.image = uri
		return nil
	}
	return enrich.NewPipeline(
		enrich.NewStage("validate", validate),
		enrich.NewStage("prepare", resolve, encode),
	)
}
