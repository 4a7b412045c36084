package system

import "testing"

func TestParseOSRelease(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			"pretty name wins",
			"NAME=\"Ubuntu\"\nVERSION=\"22.04.4 LTS (Jammy Jellyfish)\"\nPRETTY_NAME=\"Ubuntu 22.04.4 LTS\"\n",
			"Ubuntu 22.04.4 LTS",
		},
		{
			"name plus version",
			"NAME=\"Debian GNU/Linux\"\nVERSION=\"12 (bookworm)\"\n",
			"Debian GNU/Linux 12 (bookworm)",
		},
		{
			"name only",
			"NAME=\"Arch Linux\"\n",
			"Arch Linux",
		},
		{
			"empty file",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseOSRelease([]byte(tt.data)); got != tt.want {
				t.Errorf("parseOSRelease = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLSBRelease(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			"description wins",
			"DISTRIB_ID=Ubuntu\nDISTRIB_RELEASE=20.04\nDISTRIB_DESCRIPTION=\"Ubuntu 20.04.6 LTS\"\n",
			"Ubuntu 20.04.6 LTS",
		},
		{
			"id plus release",
			"DISTRIB_ID=Ubuntu\nDISTRIB_RELEASE=20.04\n",
			"Ubuntu 20.04",
		},
		{
			"id only",
			"DISTRIB_ID=Mint\n",
			"Mint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLSBRelease([]byte(tt.data)); got != tt.want {
				t.Errorf("parseLSBRelease = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKernelVersionRegex(t *testing.T) {
	line := "Linux version 6.8.0-45-generic (buildd@lcy02) (gcc 13.2.0) #45-Ubuntu SMP"
	m := kernelVersionRe.FindStringSubmatch(line)
	if m == nil || m[1] != "6.8.0-45-generic" {
		t.Errorf("match = %v, want 6.8.0-45-generic", m)
	}

	if kernelVersionRe.FindStringSubmatch("no version here") != nil {
		t.Error("matched a line without a version")
	}
}
