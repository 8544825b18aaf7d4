package main

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/learnx/learnx/core/content"
	"github.com/learnx/learnx/core/session"
)

func (cli *commandLine) contentService(acct session.Account) *content.Service {
	return content.NewService(cli.api, cli.notifier, logger, acct.Role)
}

func (cli *commandLine) modulesCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("modules")
	courseID := cmd.String("course", "", "Course ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *courseID == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	svc := cli.contentService(acct)
	if err := svc.LoadModules(ctx, *courseID); err != nil {
		return err
	}
	for _, mod := range svc.Modules() {
		fmt.Printf("%s  %s\n", mod.ID, mod.Title)
		files, err := svc.Files(ctx, mod.ID)
		if err != nil {
			continue
		}
		for _, f := range files {
			kind := "doc"
			if f.IsMedia() {
				kind = "media"
			}
			fmt.Printf("    %s  %-30s (%s)\n", f.ID, f.Title, kind)
		}
	}
	return nil
}

func (cli *commandLine) addModuleCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("addmodule")
	courseID := cmd.String("course", "", "Course ID")
	title := cmd.String("title", "", "Module title")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *courseID == "" || *title == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	svc := cli.contentService(acct)
	if err := svc.LoadModules(ctx, *courseID); err != nil {
		return err
	}
	mod, err := svc.AddModule(ctx, content.NewModule{Title: *title})
	if err != nil {
		return err
	}
	fmt.Printf("Added module %s\n", mod.ID)
	return nil
}

func (cli *commandLine) delModuleCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("delmodule")
	id := cmd.String("id", "", "Module ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	svc := cli.contentService(acct)
	if err := svc.RemoveModule(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Deleted")
	return nil
}

func (cli *commandLine) uploadCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("upload")
	moduleID := cmd.String("module", "", "Module ID")
	path := cmd.String("path", "", "Path of the file to upload")
	title := cmd.String("title", "", "Display title (audio uploads)")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *moduleID == "" || *path == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	svc := cli.contentService(acct)
	uploaded, err := svc.UploadFile(ctx, *moduleID, content.Upload{
		Filename:    filepath.Base(*path),
		Title:       *title,
		ContentType: mime.TypeByExtension(filepath.Ext(*path)),
		Body:        f,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s as %s\n", uploaded.Filename, uploaded.ID)
	if uploaded.Transcription != "" {
		fmt.Println("Transcription ready.")
	}
	return nil
}

func (cli *commandLine) delFileCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("delfile")
	moduleID := cmd.String("module", "", "Module ID")
	id := cmd.String("id", "", "File ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *moduleID == "" || *id == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	svc := cli.contentService(acct)
	if err := svc.RemoveFile(ctx, *moduleID, *id); err != nil {
		return err
	}
	fmt.Println("Deleted")
	return nil
}

// previewCmd fetches a file and serves it on the loopback preview server so
// the OS viewer can open it, the CLI's equivalent of the in-page viewer.
func (cli *commandLine) previewCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("preview")
	fileID := cmd.String("file", "", "File ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *fileID == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	svc := cli.contentService(acct)
	fc, err := svc.Content(ctx, *fileID)
	if err != nil {
		return err
	}

	if err := cli.previews.Start(); err != nil {
		return err
	}
	defer cli.previews.Stop(context.Background())

	url := cli.previews.Serve(fc)
	fmt.Printf("Serving %s at %s - press Enter to stop.\n", fc.Filename, url)
	fmt.Scanln()
	cli.previews.Drop(url)
	return nil
}
