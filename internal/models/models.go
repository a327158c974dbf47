package models

import "time"

type Admin struct {
	ID                string     `db:"id"`
	Email             string     `db:"email"`
	Name              string     `db:"name"`
	PasswordHash      string     `db:"password_hash"`
	Role              string     `db:"role"`
	IsActive          bool       `db:"is_active"`
	LastLogin         *time.Time `db:"last_login"`
	PasswordChangedAt *time.Time `db:"password_changed_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

type Event struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Date        time.Time `db:"date"`
	Time        string    `db:"time"`
	Location    string    `db:"location"`
	Description *string   `db:"description"`
	ImageURL    *string   `db:"image_url"`
	Category    *string   `db:"category"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Testimonial struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Sermon struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Preacher    string    `db:"preacher"`
	Date        time.Time `db:"date"`
	Description *string   `db:"description"`
	MediaURL    *string   `db:"media_url"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type BlogPost struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Slug          string    `db:"slug"`
	Content       string    `db:"content"`
	Author        string    `db:"author"`
	Tags          []byte    `db:"tags"`
	FeaturedImage *string   `db:"featured_image"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type GalleryFolder struct {
	ID              string    `db:"id"`
	Title           string    `db:"title"`
	Description     *string   `db:"description"`
	Category        string    `db:"category"`
	PreviewImageURL string    `db:"preview_image_url"`
	Images          []byte    `db:"images"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type LiveStream struct {
	ID            string     `db:"id"`
	Title         string     `db:"title"`
	YoutubeURL    string     `db:"youtube_url"`
	IsActive      bool       `db:"is_active"`
	ScheduledTime *time.Time `db:"scheduled_time"`
	Description   string     `db:"description"`
	Thumbnail     *string    `db:"thumbnail"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

type SiteVisit struct {
	ID        string    `db:"id"`
	IPAddress *string   `db:"ip_address"`
	UserAgent *string   `db:"user_agent"`
	Path      *string   `db:"path"`
	Referrer  *string   `db:"referrer"`
	CreatedAt time.Time `db:"created_at"`
}

type ServerMetricSample struct {
	ID               string    `db:"id"`
	CapturedAt       time.Time `db:"captured_at"`
	ProcessRSSBytes  int64     `db:"process_rss_bytes"`
	SystemMemoryUsed int64     `db:"system_memory_used_bytes"`
	SystemMemoryMax  int64     `db:"system_memory_total_bytes"`
	DiskUsedBytes    int64     `db:"disk_used_bytes"`
	DiskTotalBytes   int64     `db:"disk_total_bytes"`
	ProcessCpuLoad   float64   `db:"process_cpu_load"`
	SystemCpuLoad    float64   `db:"system_cpu_load"`
	Goroutines       int       `db:"goroutines"`
}
