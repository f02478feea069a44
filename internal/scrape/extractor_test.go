package scrape

import (
	"reflect"
	"testing"
)

const listingFixture = `<tbody class="__TableItemsSwiper">
<tr>
	<td>1</td>
	<td><img src="/img/alpha.png"></td>
	<td>
		<a class="dapp_detaillink" href="/games/alpha-worlds"></a>
		<div class="__TextView">
			<b>Alpha Worlds</b>
			<span>Explore floating islands and earn.</span>
			<div class="__TagItem">Adventure</div>
			<div class="__TagItem">RPG</div>
		</div>
	</td>
	<td><a title="Ethereum"></a><a title="Polygon"></a></td>
	<td><a title="Web"></a><a title="Android"></a></td>
	<td><a>Live</a></td>
	<td><a>Yes</a></td>
	<td><a>Free-to-Play</a></td>
	<td><a>Token</a><a>NFT</a></td>
	<td><span class="dailychangepercentage">86%</span></td>
</tr>
<tr>
	<td>2</td>
	<td><img src="/img/ghost.png"></td>
	<td><a class="dapp_detaillink" href="/games/ghost"></a></td>
	<td><a title="Solana"></a></td>
	<td><a title="Web"></a></td>
	<td><a>Beta</a></td>
	<td><a>Yes</a></td>
	<td><a>Free-to-Play</a></td>
	<td><a>Token</a></td>
	<td><span class="dailychangepercentage">12%</span></td>
</tr>
<tr>
	<td>3</td>
	<td><img src="/img/beta.png"></td>
	<td>
		<a class="dapp_detaillink" href="/games/beta-racers"></a>
		<div class="__TextView">
			<b>Beta Racers</b>
			<span>Race to earn.</span>
			<div class="__TagItem">Racing</div>
		</div>
	</td>
	<td><a title="BNB Chain"></a></td>
	<td><a title="iOS"></a></td>
	<td><a>Presale</a></td>
	<td><a>No</a></td>
	<td><a>Paid</a></td>
	<td><a>NFT</a></td>
	<td><span class="dailychangepercentage">41%</span></td>
</tr>
</tbody>`

func TestExtractRecords_SkipsRowWithoutName(t *testing.T) {
	records, err := ExtractRecords(listingFixture)
	if err != nil {
		t.Fatalf("ExtractRecords failed: %v", err)
	}

	// Row 2 has no details block, so no name; its siblings must survive.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	want := map[string]string{
		"Name":       "Alpha Worlds",
		"Desc":       "Explore floating islands and earn.",
		"Category":   "Adventure; RPG",
		"Blockchain": "Ethereum; Polygon",
		"Device":     "Web; Android",
		"Status":     "Live",
		"NFT":        "Yes",
		"F2P":        "Free-to-Play",
		"P2E":        "Token; NFT",
		"Score":      "86%",
		"Link":       "/games/alpha-worlds",
	}
	for field, value := range want {
		if first[field] != value {
			t.Errorf("field %s: got %q, want %q", field, first[field], value)
		}
	}

	if records[1]["Name"] != "Beta Racers" {
		t.Errorf("second record name: got %q, want %q", records[1]["Name"], "Beta Racers")
	}
}

func TestExtractRecords_Idempotent(t *testing.T) {
	a, err := ExtractRecords(listingFixture)
	if err != nil {
		t.Fatalf("first extraction failed: %v", err)
	}
	b, err := ExtractRecords(listingFixture)
	if err != nil {
		t.Fatalf("second extraction failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("extracting the same markup twice yielded different records")
	}
}

func TestExtractRecords_EmptyContainer(t *testing.T) {
	records, err := ExtractRecords(`<tbody class="__TableItemsSwiper"></tbody>`)
	if err != nil {
		t.Fatalf("ExtractRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records from an empty container, got %d", len(records))
	}
}

func TestExtractContainer(t *testing.T) {
	doc := `<html><body><table><tbody class="__TableItemsSwiper"><tr><td>x</td></tr></tbody></table></body></html>`

	raw, found, err := extractContainer(doc, "tbody.__TableItemsSwiper")
	if err != nil {
		t.Fatalf("extractContainer failed: %v", err)
	}
	if !found {
		t.Fatal("expected the container to be found")
	}
	if raw == "" {
		t.Error("expected non-empty container markup")
	}

	_, found, err = extractContainer(doc, "tbody.__Missing")
	if err != nil {
		t.Fatalf("extractContainer failed: %v", err)
	}
	if found {
		t.Error("an absent container must report found=false, not an error")
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		page int
		want string
	}{
		{"plain base", "https://playtoearn.com/blockchaingames", 3, "https://playtoearn.com/blockchaingames?page=3"},
		{"existing query kept", "https://example.com/list?sort=score", 7, "https://example.com/list?page=7&sort=score"},
		{"page param replaced", "https://example.com/list?page=99", 1, "https://example.com/list?page=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageURL(tt.base, tt.page)
			if err != nil {
				t.Fatalf("PageURL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
