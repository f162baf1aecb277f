// SPDX-License-Identifier: Apache-2.0

//go:build windows

package terminal

func candidates() []Handle {
	return []Handle{
		{Name: "wt", bin: "wt", args: []string{"cmd", "/k", "{}"}},
		{Name: "powershell", bin: "powershell", args: []string{"-NoExit", "-Command", "{}"}},
		{Name: "cmd", bin: "cmd", args: []string{"/c", "start", "cmd", "/k", "{}"}},
	}
}

func genericHandle(bin string) Handle {
	return Handle{Name: bin, bin: bin, args: []string{"{}"}}
}

func available(h Handle) bool {
	_, err := lookPath(h.bin)
	return err == nil
}

func preferredFromEnv(cands []Handle) (Handle, bool) {
	return Handle{}, false
}

func buildArgv(h Handle, command string) ([]string, error) {
	return append([]string{h.bin}, expandArgs(h.args, command)...), nil
}
