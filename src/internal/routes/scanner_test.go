package routes

import "testing"

func TestScanner_MatchHeader(t *testing.T) {
	s := NewScanner(DefaultGrammar)
	tests := []struct {
		line string
		want bool
	}{
		{"class netroutes::routes {", true},
		{"  class netroutes::routes{", true},
		{"class netroutes::routes {               # comment", true},
		{"class netroutes::routes {   ", true},
		{"class netroutes::routes", false},
		{"# class netroutes::routes {", false},
		{"class netroutes::routes { network_route", false},
		{"class Netroutes::Routes {", false},
		{"class netroutesXroutes {", false},
	}

	for _, tt := range tests {
		if got := s.MatchHeader(tt.line); got != tt.want {
			t.Errorf("MatchHeader(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestScanner_MatchBlockHead(t *testing.T) {
	s := NewScanner(DefaultGrammar)
	tests := []struct {
		line   string
		want   bool
		wantNm string
	}{
		{"  network_route { '172.17.67.0/24':     # comment", true, "172.17.67.0/24"},
		{`network_route {"default":`, true, "default"},
		{"network_route{ 'a b':", true, "a b"},
		{"network_route { '':", true, ""},
		{"network_route { 'x'", false, ""},
		{"network_route '172.17.67.0/24':", false, ""},
		{`network_route { 'mixed":`, false, ""},
		{"# network_route { 'x':", false, ""},
	}

	for _, tt := range tests {
		head, ok := s.MatchBlockHead(tt.line)
		if ok != tt.want {
			t.Errorf("MatchBlockHead(%q) ok = %v, want %v", tt.line, ok, tt.want)
			continue
		}
		if ok && head.Name != tt.wantNm {
			t.Errorf("MatchBlockHead(%q) name = %q, want %q", tt.line, head.Name, tt.wantNm)
		}
	}
}

func TestScanner_MatchBlockItem(t *testing.T) {
	s := NewScanner(DefaultGrammar)
	tests := []struct {
		name      string
		line      string
		want      bool
		wantKey   string
		wantValue string
	}{
		{"single quoted with comment", "    ensure    => 'present',             # comment", true, "ensure", "present"},
		{"double quoted", `    gateway => "10.0.2.2",`, true, "gateway", "10.0.2.2"},
		{"no trailing comma", "    network   => 'default'", true, "network", "default"},
		{"variable passes verbatim", "    interface => $appout,", true, "interface", "$appout"},
		{"unquoted with comment", "    interface => $appout   # var", true, "interface", "$appout"},
		{"value with spaces", "    options   => 'table 200',", true, "options", "table 200"},
		{"empty quoted", "    options   => '',", true, "options", ""},
		{"no spaces", "ensure=>'absent'", true, "ensure", "absent"},
		{"commented out", "    # ensure    => 'absent',", false, "", ""},
		{"not an item", "  }", false, "", ""},
		{"block head", "  network_route { 'x':", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := s.MatchBlockItem(tt.line)
			if ok != tt.want {
				t.Fatalf("MatchBlockItem(%q) ok = %v, want %v", tt.line, ok, tt.want)
			}
			if !ok {
				return
			}
			if item.Key != tt.wantKey || item.Value != tt.wantValue {
				t.Errorf("MatchBlockItem(%q) = %q => %q, want %q => %q",
					tt.line, item.Key, item.Value, tt.wantKey, tt.wantValue)
			}
		})
	}
}

func TestScanner_MatchCloseBrace(t *testing.T) {
	s := NewScanner(DefaultGrammar)
	tests := []struct {
		line string
		want bool
	}{
		{"}", true},
		{"  }  # comment", true},
		{"}  # end file", true},
		{"  }   ", true},
		{"  },", false},
		{"  } }", false},
		{"# }", false},
	}

	for _, tt := range tests {
		if got := s.MatchCloseBrace(tt.line); got != tt.want {
			t.Errorf("MatchCloseBrace(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestScanner_CustomGrammar(t *testing.T) {
	s := NewScanner(Grammar{ClassName: "site::routes", ResourceType: "route.v2"})

	if !s.MatchHeader("class site::routes {") {
		t.Error("Expected custom class header to match")
	}
	if s.MatchHeader("class netroutes::routes {") {
		t.Error("Expected default class header not to match custom grammar")
	}
	if _, ok := s.MatchBlockHead("route.v2 { 'x':"); !ok {
		t.Error("Expected custom resource type to match")
	}
	if _, ok := s.MatchBlockHead("routeXv2 { 'x':"); ok {
		t.Error("Expected resource type to be matched literally")
	}
}
