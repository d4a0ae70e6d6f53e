// Package workpool bounds the concurrency of CPU-bound bcrypt work so a
// burst of registrations or logins cannot starve request-handling
// goroutines.
package workpool

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/api/metrics"
	"github.com/taskforge/task-api/internal/core/hash"
)

const (
	defaultWorkers = 4
	queueBuffer    = 64
)

type op int

const (
	opHash op = iota
	opVerify
)

type result struct {
	digest string
	ok     bool
	err    error
}

type job struct {
	op     op
	plain  string
	digest string
	reply  chan result
}

// HashPool runs password hashing and verification on a fixed set of worker
// goroutines. It implements ports.PasswordHasher.
type HashPool struct {
	hasher  *hash.Hasher
	jobs    chan job
	workers int
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers. If numWorkers <= 0,
// defaultWorkers is used.
func NewHashPool(hasher *hash.Hasher, numWorkers int, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &HashPool{
		hasher:  hasher,
		jobs:    make(chan job, queueBuffer),
		workers: numWorkers,
		log:     log,
	}
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	p.log.Info().Int("workers", p.workers).Msg("hash pool started")
}

// Hash computes a digest of plaintext on a pool worker. It honours ctx while
// the job is queued and while waiting for the reply.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := p.submit(ctx, job{op: opHash, plain: plaintext, reply: make(chan result, 1)})
	if err != nil {
		return "", err
	}
	return res.digest, res.err
}

// Verify checks plaintext against digest on a pool worker.
func (p *HashPool) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	res, err := p.submit(ctx, job{op: opVerify, plain: plaintext, digest: digest, reply: make(chan result, 1)})
	if err != nil {
		return false, err
	}
	return res.ok, res.err
}

func (p *HashPool) submit(ctx context.Context, j job) (result, error) {
	select {
	case p.jobs <- j:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return result{}, ctx.Err()
	}

	select {
	case res := <-j.reply:
		return res, nil
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-p.jobs:
			if !ok {
				return
			}
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			switch j.op {
			case opHash:
				digest, err := p.hasher.Hash(j.plain)
				j.reply <- result{digest: digest, err: err}
			case opVerify:
				match, err := p.hasher.Verify(j.plain, j.digest)
				j.reply <- result{ok: match, err: err}
			}
		}
	}
}
