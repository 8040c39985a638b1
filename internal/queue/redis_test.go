package queue

import (
	"testing"

	"github.com/hibiken/asynq"
)

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name      string
		redisURL  string
		want      asynq.RedisClientOpt
		wantError bool
	}{
		{
			name:     "simple host:port format (legacy)",
			redisURL: "localhost:6379",
			want: asynq.RedisClientOpt{
				Addr: "localhost:6379",
				DB:   0,
			},
		},
		{
			name:     "redis URL without password",
			redisURL: "redis://localhost:6379",
			want: asynq.RedisClientOpt{
				Addr: "localhost:6379",
				DB:   0,
			},
		},
		{
			name:     "redis URL with password and database number",
			redisURL: "redis://:secretpass@redis.example.com:6379/1",
			want: asynq.RedisClientOpt{
				Addr:     "redis.example.com:6379",
				Password: "secretpass",
				DB:       1,
			},
		},
		{
			name:      "invalid scheme",
			redisURL:  "http://localhost:6379",
			wantError: true,
		},
		{
			name:      "invalid database number",
			redisURL:  "redis://localhost:6379/abc",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRedisURL(tt.redisURL)
			if (err != nil) != tt.wantError {
				t.Errorf("ParseRedisURL() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if err != nil {
				return
			}

			if got.Addr != tt.want.Addr {
				t.Errorf("ParseRedisURL() Addr = %v, want %v", got.Addr, tt.want.Addr)
			}
			if got.Password != tt.want.Password {
				t.Errorf("ParseRedisURL() Password = %v, want %v", got.Password, tt.want.Password)
			}
			if got.DB != tt.want.DB {
				t.Errorf("ParseRedisURL() DB = %v, want %v", got.DB, tt.want.DB)
			}
		})
	}
}
