package content

// Destination is one entry of the destinations catalog.
type Destination struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Price       string   `json:"price"`
	Duration    string   `json:"duration"`
	Tags        []string `json:"tags"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Recommended bool     `json:"recommended"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// NewDestination is the writable subset of a destination record.
type NewDestination struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Price       string   `json:"price"`
	Duration    string   `json:"duration"`
	Tags        []string `json:"tags"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Recommended bool     `json:"recommended"`
}

// Guide is a published travel guide article.
type Guide struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	AuthorID    *int     `json:"author_id"`
	ReadTime    string   `json:"read_time"`
	PublishDate string   `json:"publish_date"`
	CoverImage  string   `json:"cover_image"`
	Tags        []string `json:"tags"`
	Views       int      `json:"views"`
	Likes       int      `json:"likes"`
	Featured    bool     `json:"featured"`
	IsPublished bool     `json:"is_published"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// CommunityPost is one entry of the community feed.
type CommunityPost struct {
	ID             int      `json:"id"`
	AuthorName     string   `json:"author_name"`
	AuthorAvatar   *string  `json:"author_avatar"`
	AuthorVerified bool     `json:"author_verified"`
	AuthorID       *int     `json:"author_id"`
	Content        string   `json:"content"`
	Location       *string  `json:"location"`
	Images         []string `json:"images"`
	Likes          int      `json:"likes"`
	Comments       int      `json:"comments"`
	Shares         int      `json:"shares"`
	Trending       bool     `json:"trending"`
	IsActive       bool     `json:"is_active"`
	CreatedAt      string   `json:"created_at"`
}

// TeamMember is shown on the about page.
type TeamMember struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Avatar       *string `json:"avatar"`
	Description  *string `json:"description"`
	DisplayOrder int     `json:"display_order"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

// SiteFeature is a marketing feature card on the landing page.
type SiteFeature struct {
	ID           int    `json:"id"`
	Icon         string `json:"icon"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

// UserFavorite is a destination a user saved to their profile.
type UserFavorite struct {
	ID                  int     `json:"id"`
	UserID              int     `json:"user_id"`
	DestinationID       *int    `json:"destination_id"`
	DestinationName     string  `json:"destination_name"`
	DestinationLocation *string `json:"destination_location"`
	DestinationImage    *string `json:"destination_image"`
	SavedDate           string  `json:"saved_date"`
	CreatedAt           string  `json:"created_at"`
}

// UserTrip is a past or upcoming trip on a user's profile.
type UserTrip struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Destination string  `json:"destination"`
	Country     string  `json:"country"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Duration    *string `json:"duration"`
	Status      string  `json:"status"`
	PhotosCount int     `json:"photos_count"`
	CoverImage  *string `json:"cover_image"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// UserAchievement is a profile badge with optional progress.
type UserAchievement struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Icon        string  `json:"icon"`
	Earned      bool    `json:"earned"`
	EarnedDate  *string `json:"earned_date"`
	Progress    *string `json:"progress"`
	CreatedAt   string  `json:"created_at"`
}
