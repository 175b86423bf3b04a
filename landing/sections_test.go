package landing

import (
	"errors"
	"fmt"
	"html/template"
	"testing"

	"github.com/karlseguin/typed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonderworks/beacon/cms"
)

func echoHandlers(tags ...string) map[string]SectionHandler {
	handlers := map[string]SectionHandler{}
	for _, tag := range tags {
		tag := tag
		handlers[tag] = func(s cms.Section, _ *Context) (template.HTML, error) {
			return template.HTML(fmt.Sprintf("<div>%s:%s</div>", tag, s.ID)), nil
		}
	}
	return handlers
}

func section(tag, id string) cms.Section {
	return cms.Section{Type: tag, ID: id, Fields: typed.Typed{"type": tag, "id": id}}
}

func TestRenderAllOrder(t *testing.T) {
	sr := NewSectionRenderer(echoHandlers(SectionHero, SectionFAQ, SectionCTA))
	rc := &Context{}

	out := sr.RenderAll([]cms.Section{
		section(SectionHero, "h1"),
		section(SectionFAQ, "f1"),
		section(SectionCTA, "c1"),
	}, rc)

	require.Len(t, out, 3)
	assert.Equal(t, template.HTML("<div>hero:h1</div>"), out[0].HTML)
	assert.Equal(t, template.HTML("<div>faq:f1</div>"), out[1].HTML)
	assert.Equal(t, template.HTML("<div>cta:c1</div>"), out[2].HTML)
}

func TestRenderAllSkipsUnknownVariant(t *testing.T) {
	sr := NewSectionRenderer(echoHandlers(SectionHero, SectionCTA))
	rc := &Context{}

	out := sr.RenderAll([]cms.Section{
		section(SectionHero, "h1"),
		section("holographicBanner", "x1"),
		section(SectionCTA, "c1"),
	}, rc)

	// The unknown record is dropped; its neighbours render in order.
	require.Len(t, out, 2)
	assert.Equal(t, template.HTML("<div>hero:h1</div>"), out[0].HTML)
	assert.Equal(t, template.HTML("<div>cta:c1</div>"), out[1].HTML)
}

func TestRenderAllSkipsFailingHandler(t *testing.T) {
	handlers := echoHandlers(SectionHero, SectionCTA)
	handlers[SectionFAQ] = func(cms.Section, *Context) (template.HTML, error) {
		return "", errors.New("malformed payload")
	}
	sr := NewSectionRenderer(handlers)

	out := sr.RenderAll([]cms.Section{
		section(SectionHero, "h1"),
		section(SectionFAQ, "f1"),
		section(SectionCTA, "c1"),
	}, &Context{})

	require.Len(t, out, 2)
	assert.Equal(t, template.HTML("<div>hero:h1</div>"), out[0].HTML)
	assert.Equal(t, template.HTML("<div>cta:c1</div>"), out[1].HTML)
}

func TestRenderKeyStableUnderReorder(t *testing.T) {
	sr := NewSectionRenderer(echoHandlers(SectionHero, SectionCTA))
	rc := &Context{}

	a := section(SectionHero, "1")
	b := section(SectionCTA, "2")

	first := sr.RenderAll([]cms.Section{a, b}, rc)
	second := sr.RenderAll([]cms.Section{b, a}, rc)

	require.Len(t, first, 2)
	require.Len(t, second, 2)

	// Keys follow the id, not the slot.
	assert.Equal(t, first[0].Key, second[1].Key)
	assert.Equal(t, first[1].Key, second[0].Key)
	assert.NotEqual(t, first[0].Key, first[1].Key)
}

func TestRenderKeyPositionalFallback(t *testing.T) {
	sr := NewSectionRenderer(echoHandlers(SectionText))

	out := sr.RenderAll([]cms.Section{
		section(SectionText, ""),
		section(SectionText, ""),
	}, &Context{})

	require.Len(t, out, 2)
	assert.NotEqual(t, out[0].Key, out[1].Key)
}
