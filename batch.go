package ron

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Document pairs one RON source buffer with the decode target it should be
// unmarshaled into. ParseManyConcurrently populates each Into in place.
type Document struct {
	Data []byte
	Into any
}

// ParseManyConcurrently decodes each document in docs on its own goroutine,
// sharing opts across them (safe: a *decoder is never shared, each call
// builds its own). It returns the first error encountered; documents not
// yet started when an error or ctx cancellation arrives are skipped. This
// is a batch convenience built on top of [Unmarshal]; it is not itself part
// of the grammar, driver, or emitter.
func ParseManyConcurrently(ctx context.Context, docs []Document, opts *Options) error {
	grp, gctx := errgroup.WithContext(ctx)
	for i := range docs {
		doc := docs[i]
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return Unmarshal(doc.Data, doc.Into, opts)
		})
	}
	return grp.Wait()
}
