package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/pkg/models"
)

// Key layout: records are JSON values under type-prefixed keys, with one
// extra index key mapping the manual dedup triple onto a sourceId.
const (
	companyKeyPrefix  = "company:name:"
	jobKeyPrefix      = "job:source:"
	jobTripleIndexKey = "job:triple:"
)

// RedisStore is a go-redis backed Store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store over the configured Redis instance
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, &StorageError{Op: "parse redis url", Err: err}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return &RedisStore{client: redis.NewClient(opts)}, nil
}

// Ping tests the Redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return &StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func tripleIndexKey(title, companyName, city string) string {
	return jobTripleIndexKey + title + "\x00" + companyName + "\x00" + city
}

// FindCompanyByName looks a company up by exact name
func (s *RedisStore) FindCompanyByName(ctx context.Context, name string) (*models.Company, error) {
	data, err := s.client.Get(ctx, companyKeyPrefix+name).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "find company", Err: err}
	}

	var company models.Company
	if err := json.Unmarshal(data, &company); err != nil {
		return nil, &StorageError{Op: "decode company", Err: err}
	}
	return &company, nil
}

// CreateCompany persists a new company. SetNX keeps the first write when two
// concurrent runs race on the same name.
func (s *RedisStore) CreateCompany(ctx context.Context, candidate models.CompanyCandidate) (*models.Company, error) {
	company := models.NewCompany(uuid.New().String(), candidate)

	data, err := json.Marshal(company)
	if err != nil {
		return nil, &StorageError{Op: "encode company", Err: err}
	}

	created, err := s.client.SetNX(ctx, companyKeyPrefix+company.Name, data, 0).Result()
	if err != nil {
		return nil, &StorageError{Op: "create company", Err: err}
	}
	if !created {
		return nil, &StorageError{Op: "create company", Err: fmt.Errorf("duplicate name %q", company.Name)}
	}

	return company, nil
}

// FindJobBySourceID looks a job up by its source-scoped identifier
func (s *RedisStore) FindJobBySourceID(ctx context.Context, sourceID string) (*models.Job, error) {
	data, err := s.client.Get(ctx, jobKeyPrefix+sourceID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "find job", Err: err}
	}

	var job models.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, &StorageError{Op: "decode job", Err: err}
	}
	return &job, nil
}

// FindJobByTitleCompanyCity resolves the manual dedup triple through the
// index key, then loads the job.
func (s *RedisStore) FindJobByTitleCompanyCity(ctx context.Context, title, companyName, city string) (*models.Job, error) {
	sourceID, err := s.client.Get(ctx, tripleIndexKey(title, companyName, city)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "find job by triple", Err: err}
	}

	return s.FindJobBySourceID(ctx, sourceID)
}

// CreateJob persists a new job and its triple index entry
func (s *RedisStore) CreateJob(ctx context.Context, companyID string, candidate models.JobCandidate) (*models.Job, error) {
	job := models.NewJob(uuid.New().String(), companyID, candidate)

	data, err := json.Marshal(job)
	if err != nil {
		return nil, &StorageError{Op: "encode job", Err: err}
	}

	created, err := s.client.SetNX(ctx, jobKeyPrefix+job.SourceID, data, 0).Result()
	if err != nil {
		return nil, &StorageError{Op: "create job", Err: err}
	}
	if !created {
		return nil, &StorageError{Op: "create job", Err: fmt.Errorf("duplicate source id %q", job.SourceID)}
	}

	err = s.client.Set(ctx, tripleIndexKey(job.Title, job.CompanyName, job.Location.City), job.SourceID, 0).Err()
	if err != nil {
		return nil, &StorageError{Op: "index job", Err: err}
	}

	return job, nil
}
