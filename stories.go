package manhattan

import (
	"log"
	"slices"
	"strings"
)

// Eras used as the date of a story when only the colonial period is known.
const (
	EraDutch   = 1664
	EraBritish = 1776
)

// SourceRogerson cites "Manhattan Street Names Past and Present" by Dan Rogerson.
const SourceRogerson = "Rogerson, Manhattan Street Names Past and Present"

// Story is a short history of one street, shown before the street is painted.
type Story struct {
	Name       string
	Paragraphs []string
	Sources    []string
	// Year is when the street appeared, or an era constant.
	Year int
}

// StoryCatalog indexes stories by street name and remembers their authored
// order, which is also the narrative order.
type StoryCatalog struct {
	stories []Story
	byName  map[string]*Story
}

// NewStoryCatalog builds a catalog. A later story with a duplicate name
// replaces the earlier one, with a warning.
func NewStoryCatalog(stories []Story) *StoryCatalog {
	c := &StoryCatalog{
		stories: stories,
		byName:  make(map[string]*Story, len(stories)),
	}
	for i := range c.stories {
		s := &c.stories[i]
		if _, dup := c.byName[s.Name]; dup {
			log.Printf("manhattan: multiple street stories for %q exist", s.Name)
		}
		c.byName[s.Name] = s
	}
	return c
}

// Story returns the story for a street, or nil.
func (c *StoryCatalog) Story(name string) *Story {
	if c == nil {
		return nil
	}
	return c.byName[name]
}

// Has reports whether a street has a story.
func (c *StoryCatalog) Has(name string) bool {
	return c.Story(name) != nil
}

// Len returns the number of stories.
func (c *StoryCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.stories)
}

// NarrativeOrder returns the storied streets in authored order. The order is
// roughly chronological and every street branches off one earlier in the list.
func (c *StoryCatalog) NarrativeOrder() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.stories))
	for i, s := range c.stories {
		names[i] = s.Name
	}
	return names
}

// SortChronologically sorts names in place by story year, then by name.
// Streets without a story sort after all storied streets.
func (c *StoryCatalog) SortChronologically(names []string) {
	slices.SortStableFunc(names, func(a, b string) int {
		sa, sb := c.Story(a), c.Story(b)
		switch {
		case sa != nil && sb != nil:
			if sa.Year != sb.Year {
				return sa.Year - sb.Year
			}
		case sa != nil:
			return -1
		case sb != nil:
			return 1
		}
		return strings.Compare(a, b)
	})
}

// Validate warns about stories whose street is not among names and returns
// the offending story names.
func (c *StoryCatalog) Validate(names []string) []string {
	if c == nil {
		return nil
	}
	var invalid []string
	for _, s := range c.stories {
		if !slices.Contains(names, s.Name) {
			log.Printf("manhattan: story has invalid street name %q, it will never be shown", s.Name)
			invalid = append(invalid, s.Name)
		}
	}
	return invalid
}

// WordWrap greedily breaks s into lines of at most width characters at
// spaces. Words longer than width are kept whole on their own line.
func WordWrap(s string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(s) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 || len(lines) == 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// ParagraphsToLines word-wraps each paragraph and separates paragraphs with
// a blank line.
func ParagraphsToLines(paragraphs []string, width int) []string {
	var lines []string
	for i, p := range paragraphs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, WordWrap(p, width)...)
	}
	return lines
}

// ShortenStreetName abbreviates the first "Street" and "Place" in name.
func ShortenStreetName(name string) string {
	name = strings.Replace(name, "Street", "St", 1)
	return strings.Replace(name, "Place", "Pl", 1)
}

// DefaultStories are the built-in street histories, in narrative order.
var DefaultStories = []Story{
	{
		Name: "Pearl Street",
		Paragraphs: []string{
			"Pearl street dates back to the early 1600s and was named for the many oysters found in the river.",
			"It ran along the waterfront until the latter half of the 18th century, when Water and Front streets were built from landfill.",
			"During British rule, it was called Great Queen Street, but changed back after the revolution.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/Pearl_Street_(Manhattan)"},
		Year:    EraDutch,
	},
	{
		Name: "Broad Street",
		Paragraphs: []string{
			"In the early Dutch colony, a canal called the Heere Graft ran through the center of this street.",
			"The British filled the canal in 1676, resulting in a very wide street that became known as The Broad Street.",
		},
		Sources: []string{SourceRogerson},
		Year:    EraDutch,
	},
	{
		Name: "Beaver Street",
		Paragraphs: []string{
			"Beaver Street was initially laid out along a branch of the canal that existed in Broad Street long ago.",
			"It was named after the animal that was a prominent economic resource of New Amsterdam.",
		},
		Sources: []string{SourceRogerson},
		Year:    EraDutch,
	},
	{
		Name: "Bridge Street",
		Paragraphs: []string{
			"Bridge street was given its name because it was one of three bridges that crossed a canal located at present-day Broad Street.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/Bridge_Street_(Manhattan)"},
		Year:    EraDutch,
	},
	{
		Name: "Stone Street",
		Paragraphs: []string{
			"This was originally called Brewer Street because it was the location of the first commercial brewery in North America prior to 1646.",
			"Around 1655, it became the first street in the city to be paved with cobblestone, which earned it the name Stone Street.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/Stone_Street_(Manhattan)", SourceRogerson},
		Year:    1646, // brewery established
	},
	{
		Name: "Wall Street",
		Paragraphs: []string{
			"From 1711 to 1762, at the corner of Wall and Pearl, the city operated its first official market for the sale and rental of enslaved Africans and Indians.",
			"The city directly benefited from the sale of slaves by implementing taxes on every person who was bought and sold there.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/Wall_Street"},
		Year:    1653, // ordered built
	},
	{
		Name: "Broadway",
		Paragraphs: []string{
			"New Amsterdam had a large open area on the north side of its fort that formed the foot of \"De Breede Wegh\" which means \"The Broad Way.\"",
			"The open area became modern Bowling Green Park, while The Broad Way extended to what was then the city wall at Wall Street, where one of two city gates was located.",
		},
		Sources: []string{SourceRogerson},
		Year:    EraDutch,
	},
	{
		Name: "New Street",
		Paragraphs: []string{
			"In 1679, when this street opened, a common designation for new streets until a better name was settled on was \"the new street.\"",
			"However, a better name for this street was never settled on.",
		},
		Sources: []string{SourceRogerson},
		Year:    1679,
	},
	{
		Name: "Maiden Lane",
		Paragraphs: []string{
			"This lane once ran along a stream leading to the East River. It was used by young women for washing clothes.",
			"In 1712, over twenty enslaved Africans gathered in an orchard near Broadway and set fire to a building.",
			"Bloodshed ensued, and strict laws were passed: slaves could no longer gather in groups of more than 3.",
		},
		Sources: []string{
			SourceRogerson,
			"https://herb.ashp.cuny.edu/items/show/690",
			"https://en.wikipedia.org/wiki/New_York_Slave_Revolt_of_1712",
		},
		Year: EraDutch,
	},
	{
		Name: "Fair/Fulton Street",
		Paragraphs: []string{
			"Fair street, along with Partition Street west of Broadway, was renamed to Fulton Street in 1816, in honor of Robert Fulton, the inventor of the steamship.",
			"Eventually it extended to Pearl, and near their intersection in 1882 was built Pearl Street Station, the first commercial central power plant in the United States.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/Fulton_Street_(Manhattan)"},
		Year:    1696, // laid out prior to
	},
	{
		Name: "Cliff Street",
		Paragraphs: []string{
			"In 1796, the African Free School built a school house at 65 Cliff, near present-day Fulton.",
			"It was founded to provide education to children of slaves and free people of color.",
			"Its parent organization, the New York Manumission Society, fought to promote the gradual abolition of slavery.",
		},
		Sources: []string{
			"https://en.wikipedia.org/wiki/African_Free_School",
			"https://www.nyhistory.org/web/africanfreeschool/timeline/timeline-print.html",
		},
		Year: 1686, // laid out some time prior to
	},
	{
		Name: "Chatham/Park Row",
		Paragraphs: []string{
			"Originally named after William Pitt, the Earl of Chatham and Prime Minister of England, Chatham Row was renamed Park Row by 1829 due to its location along City Hall Park.",
			"By 1886, all of Chatham Street would be renamed Park Row as well.",
		},
		Sources: []string{SourceRogerson},
		Year:    1774, // named
	},
	{
		Name: "George/Spruce Street",
		Paragraphs: []string{
			"Laid out around 1725, George street was once named in honor of King George III, but eventually changed to Spruce after the Revolution.",
			"Today it's home to a famous skyscraper by Frank Gehry, located between William and Nassau.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/Spruce_Street_(Manhattan)"},
		Year:    1725,
	},
	{
		Name: "Liberty Street",
		Paragraphs: []string{
			"Originally called Crown Street, this street was renamed Liberty in 1794 to remove references to the nation's former colonial status.",
		},
		Sources: []string{SourceRogerson},
		// Only the British-era name "Crown" is recorded.
		Year: EraBritish,
	},
	{
		Name: "Ann Street",
		Paragraphs: []string{
			"This 3-block street appeared on city maps as early as 1728.",
			"In 1841, P.T. Barnum's American Museum opened at the corner of Ann and Vesey. It was was one of the most popular showplaces in the nation during the 19th century.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/Ann_Street_(Manhattan)"},
		Year:    1730, // Bradford map
	},
	{
		Name: "Courtlandt Street",
		Paragraphs: []string{
			"This street was laid out in 1733 in honor of the Van Courtlandt family of early Dutch settlers.",
			"During the 1920s, it was sometimes called \"Radio Row\" due to its plethora of merchants specializing in the sale of radio and electronic equipment.",
			"However, Radio Row was torn down in 1966 to make room for the World Trade Center.",
		},
		Sources: []string{SourceRogerson, "https://en.wikipedia.org/wiki/Radio_Row"},
		Year:    1733,
	},
	{
		Name: "Rector Street",
		Paragraphs: []string{
			"This street, first laid out in 1739, was so named because the residence of the rector of Trinity Church stood here.",
		},
		Sources: []string{SourceRogerson},
		Year:    1739,
	},
	{
		Name: "Dey Street",
		Paragraphs: []string{
			"Laid out before 1767 and named after a local landowner, Dey Street was home to the American Telephone and Telegraph Company for most of the 20th century.",
			"The company's headquarters at Broadway and Dey was the New York end of the first transatlantic telephone call, made to London in 1927.",
		},
		Sources: []string{SourceRogerson, "https://en.wikipedia.org/wiki/195_Broadway"},
		Year:    1767,
	},
	{
		Name: "Vesey Street",
		Paragraphs: []string{
			"This street was named for the Reverend William Vesey, the first rector of Trinity Church.",
			"It was ceded by the church to the city in 1761.",
		},
		Sources: []string{SourceRogerson},
		Year:    1761,
	},
	{
		Name: "Church Street",
		Paragraphs: []string{
			"Church Street was named for St. Paul's Chapel, which stands at what was originally the foot of the street at Partition/Fulton.",
			"In 1869, it was extended south to the Battery.",
		},
		Sources: []string{SourceRogerson},
		Year:    1767,
	},
	{
		Name: "Chatham Street/Park Row",
		Paragraphs: []string{
			"In 1854, Elizabeth Jennings, a Black woman who taught at the African Free School, was forcibly ejected from a streetcar at Chatham and Pearl on account of the color of her skin.",
			"She sued and won, which led to the eventual desegregation of all the city's transit systems by 1865.",
		},
		Sources: []string{
			"https://www.nytimes.com/2005/11/13/nyregion/thecity/the-schoolteacher-on-the-streetcar.html",
			"https://en.wikipedia.org/wiki/Elizabeth_Jennings_Graham",
		},
		Year: 1774,
	},
	{
		Name: "Catharine Street",
		Paragraphs: []string{
			"Catharine street was named after Catharine Desbrosses, a member of a prominent family whose distillery was located at the foot of this street.",
		},
		Sources: []string{SourceRogerson},
		Year:    EraBritish,
	},
	{
		Name: "Front Street",
		Paragraphs: []string{
			"Front street was originally built on landfill in the latter half of the 18th century.",
			"It ran along the waterfront until the turn of the next century, when a new road called South street was built from more landfill.",
		},
		Sources: []string{"https://en.wikipedia.org/wiki/South_Street_(Manhattan)"},
		Year:    1787, // regulated
	},
	{
		Name: "Rose Street",
		Paragraphs: []string{
			"Lewis Tappan, a wealthy abolitionist merchant, had a mansion on Rose Street which was ransacked by a mob of anti-abolitionists in 1834.",
			"Today, only a small piece of Rose Street survives, under the approach to the Brooklyn Bridge.",
		},
		Sources: []string{"https://forgotten-ny.com/1999/09/lower-manhattan-necrology/"},
		// Renamed from Prince to Rose in 1794, so it existed before then.
		Year: 1794,
	},
}
