// Package panel renders the control panel's terminal views: the stored
// instance table, the tracked guild list with the selected guild's loaded
// sections, and the audit log tail.
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/softfang/guildctl/internal/application"
	"github.com/softfang/guildctl/internal/domain"
)

type View struct {
	InstanceTag string
	State       domain.SessionState
	Guilds      []domain.GuildSnapshot
	Selected    *domain.GuildSnapshot
	LogEntries  []application.LogEntry
}

type RenderOptions struct {
	// MaxLogLines bounds the rendered log tail; zero shows everything.
	MaxLogLines int
}

func renderView(v View, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("guildctl panel"),
		s.instance.Render(fmt.Sprintf("%s (%s)", v.InstanceTag, v.State)),
		s.header.Render(fmt.Sprintf("guilds: %d", len(v.Guilds))),
	}

	if len(v.Guilds) == 0 {
		lines = append(lines, s.empty.Render("No guilds tracked."))
	}
	for _, g := range v.Guilds {
		lines = append(lines, renderGuildLine(g, v.Selected, s))
	}

	if v.Selected != nil {
		lines = append(lines, s.section.Render(renderSelected(*v.Selected, s)))
	}
	if len(v.LogEntries) > 0 {
		lines = append(lines, s.section.Render(renderLog(v.LogEntries, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderGuildLine(g domain.GuildSnapshot, selected *domain.GuildSnapshot, s styles) string {
	marker := "  "
	if selected != nil && selected.ID == g.ID {
		marker = "* "
	}
	return marker + s.guild.Render(g.Name) + s.detail.Render(fmt.Sprintf(" (%s, %d members)", g.ID, g.MemberCount))
}

func renderSelected(g domain.GuildSnapshot, s styles) string {
	parts := []string{
		s.guild.Render(g.Name),
	}
	if g.OwnerID != "" {
		parts = append(parts, s.detail.Render("owner: "+g.OwnerID))
	}

	sections := []struct {
		field   domain.Field
		count   int
		missing bool
	}{
		{domain.FieldMembers, len(g.Members), g.Members == nil},
		{domain.FieldChannels, len(g.Channels), g.Channels == nil},
		{domain.FieldRoles, len(g.Roles), g.Roles == nil},
		{domain.FieldEmojis, len(g.Emojis), g.Emojis == nil},
		{domain.FieldStickers, len(g.Stickers), g.Stickers == nil},
		{domain.FieldBans, len(g.Bans), g.Bans == nil},
		{domain.FieldInvites, len(g.Invites), g.Invites == nil},
		{domain.FieldTemplates, len(g.Templates), g.Templates == nil},
	}
	for _, section := range sections {
		key := s.fieldKey.Render(string(section.field) + ":")
		if section.missing {
			parts = append(parts, fmt.Sprintf("%s %s", key, s.warning.Render("unavailable")))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", key, s.detail.Render(fmt.Sprintf("%d", section.count))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderLog(entries []application.LogEntry, opts RenderOptions, s styles) string {
	if opts.MaxLogLines > 0 && len(entries) > opts.MaxLogLines {
		entries = entries[:opts.MaxLogLines]
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, s.header.Render("log"))
	for _, entry := range entries {
		lines = append(lines,
			s.logTime.Render("("+entry.At.Format("15:04:05")+")")+
				" "+s.logScope.Render("["+entry.Scope+"]")+
				" "+s.detail.Render(entry.Text))
	}
	return strings.Join(lines, "\n")
}

func renderInstances(instances []domain.Instance, s styles) string {
	lines := []string{
		s.title.Render("Stored instances"),
		s.header.Render(fmt.Sprintf("instances: %d", len(instances))),
	}
	if len(instances) == 0 {
		lines = append(lines, s.empty.Render("No instances stored."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, instance := range instances {
		title := s.instance.Render(fmt.Sprintf("%s (%s)", displayTag(instance), instance.ID))
		details := []string{"kind: " + string(instance.Kind)}
		if instance.CreatedAt != "" {
			details = append(details, "created: "+instance.CreatedAt)
		}
		if instance.TimeoutDisabled {
			details = append(details, "no connect timeout")
		}
		if instance.NoIntents {
			details = append(details, "no intents")
		}
		lines = append(lines, title, "  "+s.detail.Render(strings.Join(details, ", ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func displayTag(instance domain.Instance) string {
	if instance.Tag != "" {
		return instance.Tag
	}
	return string(instance.ID)
}
