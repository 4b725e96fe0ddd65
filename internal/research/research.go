package research

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/atsfit/internal/llm"
)

const cleanupPrompt = `Extract the complete job description from this page text. Keep the role summary, requirements, responsibilities, and preferred qualifications. Remove navigation remnants, application instructions, EEO statements, and benefits boilerplate.

The description will be compared against the candidate's resume, so keep every technical detail verbatim.

Page text:
"""
%s
"""

Return the cleaned job description as plain text.`

// maxPageChars bounds how much page text is sent to the cleanup model.
const maxPageChars = 30000

// Service resolves job posting URLs into clean description text.
type Service struct {
	client       llm.Client
	fetchOptions *FetchOptions

	// hooks injectable for tests
	fetch   func(ctx context.Context, url string, opts *FetchOptions) (*FetchResult, error)
	render  func(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error)
	verbose bool
}

// NewService creates a Service over the given LLM client.
func NewService(client llm.Client) *Service {
	return &Service{
		client:       client,
		fetchOptions: DefaultFetchOptions(),
		fetch:        FetchURL,
		render:       RenderWithBrowser,
	}
}

// ResolveJobDescription takes the raw job description input, which contains
// at least one URL, and returns clean description text. Text surrounding the
// URL is preserved as extra context for the cleanup pass.
func (s *Service) ResolveJobDescription(ctx context.Context, jobDescriptionOrURL, resumeMd string) (string, error) {
	postingURL := FirstURL(jobDescriptionOrURL)
	if postingURL == "" {
		// No parseable URL; the input is already the description.
		return jobDescriptionOrURL, nil
	}

	pageText, err := s.fetchPageText(ctx, postingURL)
	if err != nil {
		return "", fmt.Errorf("failed to load job posting: %w", err)
	}
	if len(pageText) > maxPageChars {
		pageText = pageText[:maxPageChars]
	}

	cleaned, err := s.client.GenerateContent(ctx, fmt.Sprintf(cleanupPrompt, pageText), llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to extract job description: %w", err)
	}
	if strings.TrimSpace(cleaned) == "" {
		return "", fmt.Errorf("job posting page contained no usable description")
	}
	return cleaned, nil
}

// fetchPageText loads the posting over HTTP and falls back to headless
// rendering when the static page is too thin.
func (s *Service) fetchPageText(ctx context.Context, postingURL string) (string, error) {
	platform := DetectPlatform(postingURL)
	contentSelectors := PlatformContentSelectors(platform)
	noiseSelectors := PlatformNoiseSelectors(platform)

	result, err := s.fetch(ctx, postingURL, s.fetchOptions)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", err
	}

	if ShouldUseBrowser(text) {
		if s.verbose {
			log.Printf("[RESEARCH] Static fetch too thin (%d chars), rendering %s", len(text), postingURL)
		}
		html, renderErr := s.render(ctx, postingURL, DefaultTimeout, s.verbose)
		if renderErr != nil {
			// Keep whatever the static fetch produced rather than failing
			if strings.TrimSpace(text) != "" {
				return text, nil
			}
			return "", renderErr
		}
		rendered, extractErr := ExtractMainText(html, contentSelectors, noiseSelectors...)
		if extractErr == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content at %s", postingURL)
	}
	return text, nil
}

// FirstURL returns the first http(s) URL embedded in the text, with trailing
// punctuation stripped, or "" when none is found.
func FirstURL(text string) string {
	for _, field := range strings.Fields(text) {
		if !strings.HasPrefix(field, "http://") && !strings.HasPrefix(field, "https://") {
			continue
		}
		return strings.TrimRight(field, ".,;:!?)\"'")
	}
	return ""
}
