package tui

import (
	"fmt"
	"strings"

	"github.com/mrz1836/notesync/internal/git"
)

const labelWidth = 10

// TrackingIcon returns the indicator shown next to the branch name.
func TrackingIcon(status git.RepositoryStatus) string {
	switch {
	case status.InSync():
		return "✓"
	case status.HasUpstreamTracking() && status.Tracking.Behind > 0 && status.Tracking.Ahead > 0:
		return "⇅"
	case status.HasUpstreamTracking() && status.Tracking.Behind > 0:
		return "↓"
	case status.HasUpstreamTracking():
		return "↑"
	case status.Tracking.State == git.TrackingUnknown:
		return "?"
	default:
		return "○"
	}
}

// TrackingSummary describes the upstream relationship in words.
func TrackingSummary(status git.RepositoryStatus) string {
	switch status.Tracking.State {
	case git.TrackingTracked:
		if status.InSync() {
			return "up to date"
		}
		var parts []string
		if status.Tracking.Ahead > 0 {
			parts = append(parts, fmt.Sprintf("%d ahead", status.Tracking.Ahead))
		}
		if status.Tracking.Behind > 0 {
			parts = append(parts, fmt.Sprintf("%d behind", status.Tracking.Behind))
		}
		return strings.Join(parts, ", ")
	case git.TrackingUnknown:
		if status.Tracking.Reason != "" {
			return "unknown (" + status.Tracking.Reason + ")"
		}
		return "unknown"
	case git.TrackingNone:
		if !status.HasRemote {
			return "no remote"
		}
		return "no upstream"
	}
	return ""
}

// RenderStatus formats a repository snapshot as labeled lines.
func RenderStatus(status git.RepositoryStatus) string {
	styles := NewOutputStyles()
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(styles.Label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	if !status.IsRepository {
		line("Repo", styles.Warning.Render("not a git repository"))
		return b.String()
	}

	branch := status.CurrentBranch
	if branch == "" {
		branch = "(detached)"
	}
	line("Branch", styles.Branch.Render(branch)+" "+TrackingIcon(status))

	remote := status.RemoteURL
	if remote == "" {
		remote = styles.Dim.Render("none")
	}
	line("Remote", remote)

	trackingStyle := styles.Success
	if !status.InSync() {
		trackingStyle = styles.Warning
	}
	line("Upstream", trackingStyle.Render(TrackingSummary(status)))

	changes := styles.Success.Render("clean")
	if status.ChangedCount > 0 {
		changes = styles.Warning.Render(fmt.Sprintf("%d changed", status.ChangedCount))
	}
	line("Changes", changes)

	if status.Error != "" {
		line("Error", styles.Error.Render(status.Error))
	}

	return b.String()
}
