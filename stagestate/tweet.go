package stagestate

// Tweet mockup micro-timeline, relative to the card becoming visible:
// rotating-gradient intro immediately, avatar and name shortly after,
// gradient exit with handle and body at one second.
const (
	tweetFadeIn    = 0.2
	tweetFadeOut   = 0.5
	tweetHeaderAt  = 0.2
	tweetContentAt = 1.0
)

// tweet renders the tweet mockup. Purely time-keyed; no external data.
func tweet(t, total float64) State {
	st := State{Phase: PhaseVisible, ContentVisible: true}

	visible := t >= tweetFadeIn && t < total-tweetFadeOut
	ts := &TweetState{Visible: visible}
	if visible {
		rel := t - tweetFadeIn
		ts.GradientVisible = rel < tweetContentAt
		ts.HeaderVisible = rel >= tweetHeaderAt
		ts.ContentVisible = rel >= tweetContentAt
	}
	st.Tweet = ts
	return st
}
