package youtube

import "context"

// VideoTitle resolves the title of a video. Best effort: callers treat a
// failure as "no title known" and it never blocks the transcript pipeline.
func (c *Client) VideoTitle(ctx context.Context, videoID string) (string, error) {
	video, err := c.meta.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", err
	}
	return video.Title, nil
}
