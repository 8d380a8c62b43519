package headhunter

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL      = "https://api.hh.ru"
	mineResumID = "mine"
	userAgent   = "jobquest/1.0 (jobquest assistant)"
	// Max value for search per page.
	perPage = "100"
)

// Client talks to the HH.ru API on behalf of a single authenticated user.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

func (c *Client) Search(params *SearchParams) (*Vacancies, error) {
	return c.search(params)
}

func (c *Client) GetMineResumes() (*Resumes, error) {
	return c.getResumes(mineResumID)
}

// Apply posts a negotiation with the given cover letter for every vacancy.
func (c *Client) Apply(resume *Resume, vacancies *Vacancies, message string) error {
	for _, v := range vacancies.Items {
		if err := c.postNegotiation(resume.ID, v.ID, message); err != nil {
			return err
		}

		c.logger.Info("applied to vacancy",
			zap.String("vacancy_id", v.ID),
			zap.String("vacancy_name", v.Name),
		)
	}

	return nil
}
