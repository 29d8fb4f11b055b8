// rsademo is a command-line walkthrough of toy RSA: keypair generation,
// character-by-character encryption and decryption, and a Miller–Rabin
// primality check.
package main

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"strings"

	cli "github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/smallyu/go-rsa-demo/internal/session"
	"github.com/smallyu/go-rsa-demo/pkg/rsa"
)

var version = "dev"

var (
	bitsFlag = &cli.IntFlag{
		Name:  "bits",
		Usage: "modulus bit length (two primes of half this size)",
		Value: defaultBits,
	}
	messageFlag = &cli.StringFlag{
		Name:  "message",
		Usage: "plaintext message",
	}
	roundsFlag = &cli.IntFlag{
		Name:  "rounds",
		Usage: "Miller-Rabin rounds",
		Value: defaultRounds,
	}
	nFlag = &cli.StringFlag{
		Name:     "n",
		Usage:    "modulus as a decimal string",
		Required: true,
	}
	eFlag = &cli.StringFlag{
		Name:     "e",
		Usage:    "public exponent as a decimal string",
		Required: true,
	}
	dFlag = &cli.StringFlag{
		Name:     "d",
		Usage:    "private exponent as a decimal string",
		Required: true,
	}
	cipherFlag = &cli.StringFlag{
		Name:     "cipher",
		Usage:    "comma-separated ciphertext values",
		Required: true,
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a TOML file with default bits/rounds/message",
	}
)

func main() {
	app := &cli.App{
		Name:    "rsademo",
		Version: version,
		Usage:   "educational RSA keygen/encrypt/decrypt demo (not for real secrets)",
		Flags:   []cli.Flag{configFlag},
		Before:  applyConfig,
		Commands: []*cli.Command{
			keygenCmd, encryptCmd, decryptCmd, primeCmd, demoCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// applyConfig overrides flag defaults from the optional TOML config file.
func applyConfig(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	bitsFlag.Value = cfg.Bits
	roundsFlag.Value = cfg.Rounds
	messageFlag.Value = cfg.Message
	return nil
}

func newLogger() *zap.SugaredLogger {
	l, err := zap.NewDevelopment(zap.WithCaller(false))
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}

var keygenCmd = &cli.Command{
	Name:  "keygen",
	Usage: "generate a keypair and print its components",
	Flags: []cli.Flag{bitsFlag},
	Action: func(cctx *cli.Context) error {
		log := newLogger()
		bits := cctx.Int(bitsFlag.Name)

		log.Infow("generating two primes", "bits_each", bits/2)
		kp, err := rsa.GenerateKeyPair(rand.Reader, bits)
		if err != nil {
			return err
		}
		log.Infow("keypair ready",
			"p", kp.P, "q", kp.Q, "n", kp.Public.N, "phi", kp.Phi)

		fmt.Printf("public key:\n  n = %s\n  e = %s\n", kp.Public.N, kp.Public.E)
		fmt.Printf("private key:\n  n = %s\n  d = %s\n", kp.Private.N, kp.Private.D)
		return nil
	},
}

var encryptCmd = &cli.Command{
	Name:  "encrypt",
	Usage: "encrypt a message with a public key given as --n/--e",
	Flags: []cli.Flag{nFlag, eFlag, messageFlag},
	Action: func(cctx *cli.Context) error {
		n, err := parseBig(cctx.String(nFlag.Name))
		if err != nil {
			return err
		}
		e, err := parseBig(cctx.String(eFlag.Name))
		if err != nil {
			return err
		}

		ct, err := rsa.Encrypt(&rsa.PublicKey{N: n, E: e}, cctx.String(messageFlag.Name))
		if err != nil {
			return err
		}
		fmt.Println(formatCiphertext(ct))
		return nil
	},
}

var decryptCmd = &cli.Command{
	Name:  "decrypt",
	Usage: "decrypt ciphertext values with a private key given as --n/--d",
	Flags: []cli.Flag{nFlag, dFlag, cipherFlag},
	Action: func(cctx *cli.Context) error {
		n, err := parseBig(cctx.String(nFlag.Name))
		if err != nil {
			return err
		}
		d, err := parseBig(cctx.String(dFlag.Name))
		if err != nil {
			return err
		}
		ct, err := parseCiphertext(cctx.String(cipherFlag.Name))
		if err != nil {
			return err
		}

		msg, err := rsa.Decrypt(&rsa.PrivateKey{N: n, D: d}, ct)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

var primeCmd = &cli.Command{
	Name:      "prime",
	Usage:     "run the Miller-Rabin test on a candidate",
	ArgsUsage: "CANDIDATE",
	Flags:     []cli.Flag{roundsFlag},
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return fmt.Errorf("expected exactly one candidate argument")
		}
		candidate, err := parseBig(cctx.Args().First())
		if err != nil {
			return err
		}

		ok, err := rsa.IsPrime(rand.Reader, candidate, cctx.Int(roundsFlag.Name))
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("%s is probably prime\n", candidate)
		} else {
			fmt.Printf("%s is composite\n", candidate)
		}
		return nil
	},
}

var demoCmd = &cli.Command{
	Name:  "demo",
	Usage: "run the full generate/encrypt/decrypt/verify walkthrough",
	Flags: []cli.Flag{bitsFlag, messageFlag},
	Action: func(cctx *cli.Context) error {
		log := newLogger()
		bits := cctx.Int(bitsFlag.Name)
		message := cctx.String(messageFlag.Name)

		sess := session.New(nil)

		log.Infow("step 1: generating keypair", "bits", bits)
		kp, err := sess.Generate(bits)
		if err != nil {
			return err
		}
		log.Infow("step 2: modulus and totient computed",
			"p", kp.P, "q", kp.Q, "n", kp.Public.N, "phi", kp.Phi)
		log.Infow("step 3: exponents selected",
			"e", kp.Public.E, "d", kp.Private.D)

		log.Infow("step 4: encrypting", "message", message)
		ct, err := sess.Encrypt(message)
		if err != nil {
			return err
		}
		fmt.Printf("ciphertext: %s\n", formatCiphertext(ct))

		log.Infow("step 5: decrypting", "state", sess.Details())
		decrypted, err := sess.Decrypt()
		if err != nil {
			return err
		}
		fmt.Printf("decrypted:  %s\n", decrypted)

		ok, err := sess.Verify()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("verification failed: %q != %q", message, decrypted)
		}
		log.Infow("step 6: verified, round trip matches")
		return nil
	},
}

func parseBig(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal integer: %q", s)
	}
	return v, nil
}

func parseCiphertext(s string) (rsa.Ciphertext, error) {
	parts := strings.Split(s, ",")
	ct := make(rsa.Ciphertext, 0, len(parts))
	for _, p := range parts {
		v, err := parseBig(p)
		if err != nil {
			return nil, err
		}
		ct = append(ct, v)
	}
	return ct, nil
}

func formatCiphertext(ct rsa.Ciphertext) string {
	parts := make([]string, len(ct))
	for i, v := range ct {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}
