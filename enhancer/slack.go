package enhancer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

const maxSlackBodyLength = 600

// SlackNotifier posts duplicates to a Slack incoming webhook so editors can
// decide on a manual merge.
type SlackNotifier struct {
	webhookUrl string
}

func NewSlackNotifier(webhookUrl string) *SlackNotifier {
	return &SlackNotifier{webhookUrl: webhookUrl}
}

func (n *SlackNotifier) Name() string {
	return "slack"
}

func buildHeaderBlock(dup Duplicate) slack.Block {
	return slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("*Duplicate submission for %s*", dup.Input.Place.Name), false, false),
		nil, nil)
}

func buildSourceBlock(dup Duplicate) slack.Block {
	source := dup.Input.Source
	return slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn",
			fmt.Sprintf("<%s|@%s on %s> · canonical article `%s`",
				source.PostUrl, dup.Input.Creator.InstagramHandle, source.Platform, dup.CanonicalArticleID),
			false, false))
}

func buildTitleWithShowMore(dup Duplicate) string {
	text := fmt.Sprintf("*%s*", dup.Input.Title)
	if dup.Input.Excerpt != nil && *dup.Input.Excerpt != "" {
		excerpt := []rune(*dup.Input.Excerpt)
		if len(excerpt) > maxSlackBodyLength {
			excerpt = append(excerpt[:maxSlackBodyLength], []rune("...")...)
		}
		text += "\n" + string(excerpt)
	}
	return text
}

func buildDuplicateMessage(dup Duplicate) *slack.WebhookMessage {
	blocks := []slack.Block{
		buildHeaderBlock(dup),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", buildTitleWithShowMore(dup), false, false), nil, nil),
		buildSourceBlock(dup),
	}
	return &slack.WebhookMessage{
		Text:   fmt.Sprintf("Duplicate submission for %s", dup.Input.Place.Name),
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}

func (n *SlackNotifier) NotifyDuplicate(ctx context.Context, dup Duplicate) error {
	err := slack.PostWebhookContext(ctx, n.webhookUrl, buildDuplicateMessage(dup))
	return errors.Wrap(err, "fail to post duplicate to slack")
}
